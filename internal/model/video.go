package model

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderThumbnail is served when a record carries no usable image.
const PlaceholderThumbnail = "https://images.unsplash.com/photo-1611162616475-46b635cb6868?q=80&w=1974&auto=format&fit=crop"

// Video is the canonical record for a catalog entry. Field names follow the
// upstream wire format; FileCode is the unique key within any collection.
type Video struct {
	FileCode    string    `json:"file_code"`
	Title       string    `json:"title"`
	Length      string    `json:"length"`
	SplashImg   string    `json:"splash_img,omitempty"`
	SingleImg   string    `json:"single_img,omitempty"`
	Uploaded    string    `json:"uploaded,omitempty"`
	Created     string    `json:"created,omitempty"`
	Size        string    `json:"size,omitempty"`
	Views       ViewCount `json:"views"`
	CanPlay     int       `json:"canplay,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	FldID       string    `json:"fld_id,omitempty"`
	Public      string    `json:"public,omitempty"`
}

// Thumbnail returns the best available image URL for the record.
func (v *Video) Thumbnail() string {
	if v.SplashImg != "" {
		return v.SplashImg
	}
	if v.SingleImg != "" {
		return v.SingleImg
	}
	return PlaceholderThumbnail
}

// DateString returns the first present date field.
func (v *Video) DateString() string {
	if v.Uploaded != "" {
		return v.Uploaded
	}
	return v.Created
}

// DurationSeconds parses the length field; malformed input yields 0.
func (v *Video) DurationSeconds() int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Length))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DurationDisplay formats the length as m:ss.
func (v *Video) DurationDisplay() string {
	secs := v.DurationSeconds()
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// ViewCount is an integer that decodes from either a JSON number or a
// numeric string, since the upstream emits both across endpoints.
type ViewCount int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *ViewCount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some entries carry non-numeric junk; render as zero rather
		// than failing the whole payload.
		*c = 0
		return nil
	}
	*c = ViewCount(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c ViewCount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(c), 10)), nil
}
