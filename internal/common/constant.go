// Package common contains small helpers and constants shared by the client
// layers.
package common

// APIKeyHeaderName carries the project's anon key on every hosted-backend call.
const APIKeyHeaderName = "apikey"

// Default storage bucket for uploaded source videos.
const DefaultOriginalBucket = "original_videos"

// DefaultVideoMIMEType is assumed when a picked file's type cannot be determined.
const DefaultVideoMIMEType = "video/mp4"
