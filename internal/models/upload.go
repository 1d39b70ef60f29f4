package models

// Upload describes a stored image. URL points at the JPEG master; WebPURL
// at the same image re-encoded as WebP.
type Upload struct {
	URL     string `json:"url"`
	WebPURL string `json:"webpUrl"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}
