// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/phase"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// pushPhase asks the running server to switch phase so that its judges and
// event subscribers see the change immediately.
func pushPhase(ctx context.Context, serverURL, adminKey, target string, out io.Writer) error {
	p := models.Phase(target)
	if !p.Valid() {
		return fmt.Errorf("%w: %q", phase.ErrUnknownPhase, target)
	}
	if adminKey == "" {
		return errors.New("admin key required (use -admin-key or ADMIN_KEY env)")
	}

	body, err := json.Marshal(models.SetPhaseRequest{Phase: p})
	if err != nil {
		return err
	}

	url := strings.TrimRight(serverURL, "/") + "/admin/phase"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Key", adminKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
	}

	var result models.PhaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	color.New(color.FgGreen).Fprintf(out, "phase: %s\n", result.Phase)
	return nil
}
