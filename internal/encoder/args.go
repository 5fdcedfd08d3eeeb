package encoder

import (
	"strconv"
	"strings"

	"github.com/shrinkarr/shrinkarr/internal/models"
)

// BuildArgs maps an encoding profile onto an ffmpeg invocation. The profile is
// opaque to the engine: everything codec-specific lives in profile fields.
func BuildArgs(profile *models.EncodingProfile, inputPath, outputPath string) []string {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", profile.VideoCodec,
		"-crf", strconv.Itoa(profile.CRF),
	}
	if profile.Preset != "" {
		args = append(args, "-preset", profile.Preset)
	}
	args = append(args, "-c:a", profile.AudioCodec)
	if profile.AudioBitrate != "" {
		args = append(args, "-b:a", profile.AudioBitrate)
	}
	if profile.ExtraArgs != "" {
		args = append(args, strings.Fields(profile.ExtraArgs)...)
	}
	if profile.Container == "mp4" || profile.Container == "mov" {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, "-f", containerFormat(profile.Container), outputPath)
	return args
}

// containerFormat resolves the mux format explicitly so the temp output name
// never has to carry the container extension.
func containerFormat(container string) string {
	switch container {
	case "mkv":
		return "matroska"
	case "mov", "mp4":
		return "mp4"
	case "webm":
		return "webm"
	default:
		if container == "" {
			return "matroska"
		}
		return container
	}
}
