package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func readPoints(r io.Reader) ([]point, error) {
	var out []point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want \"x,y\", got %q", line, s)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: x: %w", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: y: %w", line, err)
		}
		out = append(out, point{X: x, Y: y})
	}
	return out, sc.Err()
}

type client struct {
	base string
	http *http.Client
}

func newClient(base string) *client {
	return &client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 2 * time.Second},
	}
}

// sendPoint posts p and returns the direction the server classified it as
// ("" for none).
func (c *client) sendPoint(ctx context.Context, p point) (string, error) {
	body, _ := json.Marshal(p)
	var resp struct {
		Status    string  `json:"status"`
		Direction *string `json:"direction"`
		Message   string  `json:"message"`
	}
	if err := c.post(ctx, "/eye_data", body, &resp); err != nil {
		return "", err
	}
	if resp.Status != "success" {
		return "", fmt.Errorf("eye_data: %s", resp.Message)
	}
	if resp.Direction == nil {
		return "", nil
	}
	return *resp.Direction, nil
}

// enableTracking toggles tracking on, reading the current state first so a
// second run does not switch it back off.
func (c *client) enableTracking(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/status", nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	var st struct {
		Enabled bool `json:"eye_tracking_enabled"`
	}
	if err := json.NewDecoder(res.Body).Decode(&st); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	if st.Enabled {
		return nil
	}
	var out struct {
		Enabled bool `json:"eye_tracking_enabled"`
	}
	if err := c.post(ctx, "/toggle_eye_tracking", nil, &out); err != nil {
		return err
	}
	if !out.Enabled {
		return fmt.Errorf("tracking still disabled after toggle")
	}
	return nil
}

func (c *client) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response (HTTP %d): %w", path, res.StatusCode, err)
	}
	return nil
}
