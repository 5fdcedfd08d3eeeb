package models

import "time"

// EncodingProfile is an immutable-at-use-time snapshot of encoder parameters.
// Profiles are owned by configuration; the scheduler and engine only read them.
type EncodingProfile struct {
	ProfileID    string    `json:"profile_id" db:"profile_id"`
	Name         string    `json:"name" db:"name" validate:"required,lte=128"`
	VideoCodec   string    `json:"video_codec" db:"video_codec" validate:"required,lte=64"`
	AudioCodec   string    `json:"audio_codec" db:"audio_codec" validate:"required,lte=64"`
	Container    string    `json:"container" db:"container" validate:"required,lte=16"`
	CRF          int       `json:"crf" db:"crf" validate:"gte=0,lte=63"`
	Preset       string    `json:"preset" db:"preset" validate:"omitempty,lte=32"`
	AudioBitrate string    `json:"audio_bitrate" db:"audio_bitrate" validate:"omitempty,lte=16"`
	ExtraArgs    string    `json:"extra_args" db:"extra_args" validate:"omitempty,lte=1024"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
