package repository

const (
	getProfileQuery = `SELECT profile_id, name, video_codec, audio_codec, container, crf, preset, audio_bitrate, extra_args, created_at
					FROM encoding_profiles WHERE profile_id = $1`

	listProfilesQuery = `SELECT profile_id, name, video_codec, audio_codec, container, crf, preset, audio_bitrate, extra_args, created_at
					FROM encoding_profiles ORDER BY name ASC`
)
