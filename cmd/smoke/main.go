// Command smoke exercises a running voice agent server with failure
// scenarios and reports how gracefully each one was handled.
//
// Usage:
//
//	smoke [flags]
//
// Flags:
//
//	-url string    Base URL of the running server (default http://localhost:8000)
//	-test string   Scenario group: all, basic, network, audio (default all)
//	-audio string  Glob pattern for extra recordings to send, e.g. fixtures/**/*.wav
//
// The server is probed first; scenarios only run against a live server.
// Scenarios pass when the server answers the way a client can recover
// from, not necessarily with success.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "smoke: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL   = flag.String("url", "http://localhost:8000", "Base URL of the running server")
		group     = flag.String("test", "all", "Scenario group: all, basic, network, audio")
		audioGlob = flag.String("audio", "", "Glob pattern for extra recordings to send")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := &tester{
		base:   strings.TrimSuffix(*baseURL, "/"),
		client: &http.Client{Timeout: 60 * time.Second},
	}
	if err := t.ping(ctx); err != nil {
		return fmt.Errorf("server not reachable at %s: %w", t.base, err)
	}

	scenarios, err := selectScenarios(*group, *audioGlob)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Voice agent failure scenarios") + mutedStyle.Render(" @ "+t.base))
	var results []result
	for _, s := range scenarios {
		if ctx.Err() != nil {
			break
		}
		res := s.run(ctx, t)
		res.name = s.name
		printResult(res)
		results = append(results, res)
	}

	return report(results)
}

// result is the outcome of one scenario.
type result struct {
	name   string
	passed bool
	detail string
}

type scenario struct {
	name string
	run  func(ctx context.Context, t *tester) result
}

func selectScenarios(group, audioGlob string) ([]scenario, error) {
	basic := []scenario{
		{"health check", runHealthCheck},
		{"unknown session history", runUnknownSession},
		{"speech generation", runSpeechGeneration},
	}
	network := []scenario{
		{"client timeout", runClientTimeout},
		{"concurrent turns", runConcurrentTurns},
	}
	audio := []scenario{
		{"corrupted audio", runCorruptedAudio},
		{"silent audio", runSilentAudio},
		{"long recording", runLongRecording},
	}
	if audioGlob != "" {
		paths, err := fixtures(audioGlob)
		if err != nil {
			return nil, err
		}
		audio = append(audio, scenario{"fixture recordings", runFixtures(paths)})
	}

	switch group {
	case "all":
		return append(append(basic, audio...), network...), nil
	case "basic":
		return basic, nil
	case "network":
		return network, nil
	case "audio":
		return audio, nil
	default:
		return nil, fmt.Errorf("unknown test group %q (want all, basic, network or audio)", group)
	}
}

// fixtures expands a glob pattern, relative to the working directory,
// into the list of matching files.
func fixtures(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	var matches []string
	err := doublestar.GlobWalk(os.DirFS("."), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.FromSlash(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no recordings match %s", pattern)
	}
	return matches, nil
}

// tester issues requests against one server.
type tester struct {
	base   string
	client *http.Client
}

func (t *tester) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (t *tester) get(ctx context.Context, path string) (int, map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.base+path, nil)
	if err != nil {
		return 0, nil, err
	}
	return t.do(req)
}

// chat posts a recording as one conversation turn. A zero timeout uses
// the client default.
func (t *tester) chat(ctx context.Context, sessionID, filename string, audio []byte, timeout time.Duration) (int, map[string]any, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio_file", filename)
	if err != nil {
		return 0, nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return 0, nil, err
	}
	if err := mw.Close(); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base+"/agent/chat/"+sessionID, &body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return t.do(req)
}

func (t *tester) generateAudio(ctx context.Context, text, voiceID string) (int, map[string]any, error) {
	payload, err := json.Marshal(map[string]string{"text": text, "voice_id": voiceID})
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base+"/generate-audio", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req)
}

func (t *tester) do(req *http.Request) (int, map[string]any, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("undecodable body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func runHealthCheck(ctx context.Context, t *tester) result {
	code, body, err := t.get(ctx, "/health")
	if err != nil {
		return result{detail: err.Error()}
	}
	return result{
		passed: code == http.StatusOK,
		detail: fmt.Sprintf("HTTP %d, status %v", code, body["status"]),
	}
}

func runUnknownSession(ctx context.Context, t *tester) result {
	session := fmt.Sprintf("smoke_missing_%d", time.Now().UnixNano())
	code, body, err := t.get(ctx, "/agent/history/"+session)
	if err != nil {
		return result{detail: err.Error()}
	}
	return result{
		passed: code == http.StatusOK && body["status"] == "new_session",
		detail: fmt.Sprintf("HTTP %d, status %v", code, body["status"]),
	}
}

// runSpeechGeneration sends a long text to the synthesis endpoint. Both
// an audio URL and a structured failure count as handled.
func runSpeechGeneration(ctx context.Context, t *tester) result {
	text := strings.Repeat("This is a very long text message. ", 100)
	code, body, err := t.generateAudio(ctx, text, "en-US-natalie")
	if err != nil {
		return result{detail: err.Error()}
	}
	handled := (code == http.StatusOK && body["audio_url"] != nil) ||
		(code == http.StatusServiceUnavailable && body["fallback_message"] != nil)
	return result{passed: handled, detail: fmt.Sprintf("HTTP %d", code)}
}

func runClientTimeout(ctx context.Context, t *tester) result {
	audio := sineWAV(2*time.Second, 44100)
	_, _, err := t.chat(ctx, "smoke_timeout", "test.wav", audio, 100*time.Millisecond)
	if err == nil {
		return result{detail: "expected the client deadline to expire"}
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		return result{detail: fmt.Sprintf("failed for another reason: %v", err)}
	}
	return result{passed: true, detail: "deadline expired as expected"}
}

func runConcurrentTurns(ctx context.Context, t *tester) result {
	audio := sineWAV(2*time.Second, 44100)
	codes := make([]int, 3)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code, _, err := t.chat(ctx, "smoke_concurrent", "turn.wav", audio, 0)
			if err == nil {
				codes[i] = code
			}
		}(i)
	}
	wg.Wait()

	completed := 0
	for _, code := range codes {
		if code == http.StatusOK || code == http.StatusPartialContent {
			completed++
		}
	}
	return result{
		passed: completed >= 1,
		detail: fmt.Sprintf("%d of %d turns completed (%v)", completed, len(codes), codes),
	}
}

func runCorruptedAudio(ctx context.Context, t *tester) result {
	code, body, err := t.chat(ctx, "smoke_corrupted", "corrupted.wav", corruptedAudioBytes, 0)
	if err != nil {
		return result{detail: err.Error()}
	}
	handled := (code == http.StatusBadRequest || code == http.StatusServiceUnavailable) &&
		(body["error"] != nil || body["fallback_message"] != nil)
	return result{passed: handled, detail: fmt.Sprintf("HTTP %d, error_type %v", code, body["error_type"])}
}

// runSilentAudio sends a recording too short to contain speech.
func runSilentAudio(ctx context.Context, t *tester) result {
	audio := sineWAV(100*time.Millisecond, 44100)
	code, body, err := t.chat(ctx, "smoke_silent", "silent.wav", audio, 0)
	if err != nil {
		return result{detail: err.Error()}
	}
	handled := body["error_type"] == "empty_transcription" ||
		body["fallback_message"] != nil ||
		code == http.StatusOK
	return result{passed: handled, detail: fmt.Sprintf("HTTP %d, error_type %v", code, body["error_type"])}
}

func runLongRecording(ctx context.Context, t *tester) result {
	audio := sineWAV(30*time.Second, 44100)
	code, _, err := t.chat(ctx, "smoke_long", "large.wav", audio, 0)
	if err != nil {
		return result{detail: err.Error()}
	}
	switch code {
	case http.StatusOK, http.StatusPartialContent, http.StatusRequestEntityTooLarge, http.StatusServiceUnavailable:
		return result{passed: true, detail: fmt.Sprintf("HTTP %d", code)}
	default:
		return result{detail: fmt.Sprintf("HTTP %d", code)}
	}
}

// runFixtures sends each matched recording as its own turn. Any decoded
// response counts as handled; the point is that odd inputs never take
// the server down.
func runFixtures(paths []string) func(ctx context.Context, t *tester) result {
	return func(ctx context.Context, t *tester) result {
		handled := 0
		for _, path := range paths {
			audio, err := os.ReadFile(path)
			if err != nil {
				return result{detail: fmt.Sprintf("read %s: %v", path, err)}
			}
			_, _, err = t.chat(ctx, "smoke_fixture", filepath.Base(path), audio, 0)
			if err != nil {
				return result{detail: fmt.Sprintf("%s: %v", path, err)}
			}
			handled++
		}
		return result{passed: true, detail: fmt.Sprintf("%d recordings handled", handled)}
	}
}

func printResult(res result) {
	status := passStyle.Render("PASS")
	if !res.passed {
		status = failStyle.Render("FAIL")
	}
	line := fmt.Sprintf("%s %s", status, res.name)
	if res.detail != "" {
		line += mutedStyle.Render("  " + res.detail)
	}
	fmt.Println(line)
}

func report(results []result) error {
	passed := 0
	for _, res := range results {
		if res.passed {
			passed++
		}
	}
	summary := fmt.Sprintf("%d/%d scenarios passed", passed, len(results))
	if passed == len(results) {
		fmt.Println(passStyle.Render(summary))
		return nil
	}
	fmt.Println(failStyle.Render(summary))
	return fmt.Errorf("%d of %d scenarios failed", len(results)-passed, len(results))
}
