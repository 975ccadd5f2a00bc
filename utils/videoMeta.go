package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type oEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchVideoTitle looks up a video's title through the YouTube oEmbed
// endpoint. Non-YouTube URLs return an empty title without error.
func FetchVideoTitle(videoURL string) (string, error) {
	if !strings.Contains(videoURL, "youtube.com") && !strings.Contains(videoURL, "youtu.be") {
		return "", nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	var meta oEmbedResponse
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&meta).
		Get("https://www.youtube.com/oembed")
	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("oembed lookup failed, code: %d", resp.StatusCode())
	}

	return meta.Title, nil
}
