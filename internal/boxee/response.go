package boxee

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// NowPlaying is the parsed GetCurrentlyPlaying reply.
type NowPlaying struct {
	Playing    bool
	Title      string
	Artist     string
	Album      string
	Filename   string
	PlayStatus string
	Time       string
	Duration   string
}

// listItems splits an xbmcHttp reply into the text of its <li> entries.
// Text outside list items is ignored, unless the reply has no list items
// at all, in which case it is returned as the only item.
func listItems(body string) []string {
	z := html.NewTokenizer(strings.NewReader(body))

	var items []string
	var cur, bare strings.Builder
	inItem, sawItem := false, false
	flush := func() {
		if inItem {
			items = append(items, cur.String())
		}
		cur.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer failure; either way keep what was collected.
			flush()
			if !sawItem && strings.TrimSpace(bare.String()) != "" {
				return []string{bare.String()}
			}
			return items
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "li" {
				flush()
				inItem, sawItem = true, true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "li" {
				flush()
				inItem = false
			}
		case html.TextToken:
			if inItem {
				cur.Write(z.Text())
			} else {
				bare.Write(z.Text())
			}
		}
	}
}

// ParseVolume extracts the volume level from a GetVolume reply,
// which carries it as the leading digits of the first list item.
func ParseVolume(body string) (int, error) {
	items := listItems(body)
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: no volume in %q", ErrUnexpectedResponse, body)
	}

	first := strings.TrimSpace(items[0])
	end := 0
	for end < len(first) && first[end] >= '0' && first[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: no volume in %q", ErrUnexpectedResponse, body)
	}

	vol, err := strconv.Atoi(first[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return vol, nil
}

// ParseNowPlaying reads the Key:Value fields of a GetCurrentlyPlaying reply.
// A reply without a title means nothing is playing.
func ParseNowPlaying(body string) NowPlaying {
	var np NowPlaying
	for _, item := range listItems(body) {
		for _, line := range strings.Split(item, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.TrimSpace(key) {
			case "Title":
				np.Title = value
			case "Artist":
				np.Artist = value
			case "Album":
				np.Album = value
			case "Filename":
				np.Filename = value
			case "PlayStatus":
				np.PlayStatus = value
			case "Time":
				np.Time = value
			case "Duration":
				np.Duration = value
			}
		}
	}
	np.Playing = np.Title != ""
	return np
}
