package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
)

const (
	DefaultBaseURL = "https://www.youtube.com"

	playerResponseMarker = "ytInitialPlayerResponse = "
	userAgent            = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxPageBytes         = 4 << 20
	maxCaptionBytes      = 1 << 20
)

var (
	// ErrTranscriptsDisabled means the video exists but exposes no caption track.
	ErrTranscriptsDisabled = errors.New("transcripts disabled for video")
	// ErrVideoUnavailable means the player refused to serve the video.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrNoSegments means a caption track was found but held no text.
	ErrNoSegments = errors.New("caption track has no segments")
)

type FetcherConfig struct {
	BaseURL   string
	Languages []string
	Timeout   time.Duration
	Retry     infra.RetryConfig
}

// Fetcher downloads caption tracks by scraping the public watch page.
type Fetcher struct {
	client  *http.Client
	baseURL *url.URL
	langs   []string
	retry   infra.RetryConfig
	log     infra.Logger
}

func NewFetcher(cfg FetcherConfig, client *http.Client, log infra.Logger) (*Fetcher, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse youtube base url: %w", err)
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	rc := cfg.Retry
	if rc.Multiplier == 0 {
		rc = infra.DefaultRetryConfig
	}
	if rc.Logger == nil {
		rc.Logger = &log
	}
	return &Fetcher{client: client, baseURL: base, langs: langs, retry: rc, log: log}, nil
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch returns the caption segments of videoID in spoken order.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error) {
	player, err := f.playerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if player.Captions == nil {
		if ps := player.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
			return nil, fmt.Errorf("%w: %s %s", ErrVideoUnavailable, ps.Status, ps.Reason)
		}
		return nil, ErrTranscriptsDisabled
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	track, ok := pickBestTrack(tracks, f.langs)
	if !ok {
		return nil, fmt.Errorf("%w: every track requires a browser token", ErrTranscriptsDisabled)
	}
	f.log.Debug().Str("video_id", videoID).Str("lang", track.LanguageCode).Str("kind", track.Kind).Msg("caption track selected")

	trackURL, err := f.baseURL.Parse(track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse caption url: %w", err)
	}
	segs, err := f.timedText(ctx, trackURL.String())
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, ErrNoSegments
	}
	return segs, nil
}

func (f *Fetcher) playerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	watch := *f.baseURL
	watch.Path = strings.TrimRight(watch.Path, "/") + "/watch"
	watch.RawQuery = url.Values{"v": {videoID}, "hl": {f.langs[0]}}.Encode()

	body, err := f.get(ctx, watch.String(), maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var (
		player  *playerResponse
		scanErr error
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		var pr playerResponse
		if err := json.NewDecoder(strings.NewReader(text[idx+len(playerResponseMarker):])).Decode(&pr); err != nil {
			scanErr = fmt.Errorf("decode player response: %w", err)
			return false
		}
		player = &pr
		return false
	})
	if scanErr != nil {
		return nil, scanErr
	}
	if player == nil {
		return nil, errors.New("player response not found in watch page")
	}
	return player, nil
}

func (f *Fetcher) timedText(ctx context.Context, trackURL string) ([]domain.TranscriptSegment, error) {
	body, err := f.get(ctx, trackURL, maxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]domain.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segs = append(segs, domain.TranscriptSegment{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}
	return segs, nil
}

func (f *Fetcher) get(ctx context.Context, target string, limit int64) ([]byte, error) {
	resp, err := infra.RetryHTTP(ctx, f.retry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", f.langs[0])
		return f.client.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// needsPoToken reports whether a caption track URL only works from a browser session.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then the first usable track.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// cleanCaption undoes the second layer of entity escaping YouTube applies and
// folds the text to NFC.
func cleanCaption(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(norm.NFC.String(s))
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
