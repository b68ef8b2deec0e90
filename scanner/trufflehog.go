// Copyright (C) 2025 Dhrumil Mistry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/pkg/errors"
)

// userAgentSuffix tags outbound verification requests made by trufflehog so
// they can be attributed to this product in upstream logs.
const userAgentSuffix = "ChitraGupta"

// scanErrorMarker is part of the wire contract with trufflehog: the tool can
// exit zero and still report a broken scan through this stdout marker.
const scanErrorMarker = "encountered errors during scan"

var ErrScanFailed = errors.New("trufflehog scan failed")

type Trufflehog struct {
	// binary defaults to "trufflehog" on PATH, overridable via
	// TRUFFLEHOG_PATH.
	binary string
}

func NewTrufflehog() *Trufflehog {
	binary := os.Getenv("TRUFFLEHOG_PATH")
	if binary == "" {
		binary = "trufflehog"
	}
	return &Trufflehog{binary: binary}
}

var _ shared.SecretScanner = (*Trufflehog)(nil)

func buildArgs(cloneURL string, opts shared.ScanOptions) []string {
	args := []string{
		"git",
		cloneURL,
	}

	// a non-positive concurrency would be passed through verbatim and turn
	// into --concurrency=0; leave the flag off and let the tool pick
	if opts.Concurrency > 0 {
		args = append(args, fmt.Sprintf("--concurrency=%d", opts.Concurrency))
	}

	args = append(args,
		"--json",
		"--no-update",
		"--user-agent-suffix="+userAgentSuffix,
	)

	if opts.SinceCommit != "" {
		args = append(args, "--since-commit="+opts.SinceCommit)
	}

	if opts.OnlyVerified {
		args = append(args, "--only-verified")
	}

	return args
}

// Scan runs trufflehog against the clone url and returns its combined
// stdout/stderr. A non-zero exit or the in-stream error marker both wrap
// ErrScanFailed - either way the caller must treat the scan as not completed.
func (t *Trufflehog) Scan(ctx context.Context, cloneURL string, opts shared.ScanOptions) (string, error) {
	args := buildArgs(cloneURL, opts)

	slog.Info("starting trufflehog scan", "binary", t.binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.binary, args...)
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, errors.Wrapf(ErrScanFailed, "could not run scanner: %s: %s", err.Error(), output)
	}

	if strings.Contains(output, scanErrorMarker) {
		return output, errors.Wrapf(ErrScanFailed, "scanner reported errors: %s", output)
	}

	return output, nil
}
