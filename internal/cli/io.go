package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rewardsched/internal/core/clock"
	perr "rewardsched/internal/platform/errors"
	"rewardsched/internal/platform/logger"
	"rewardsched/internal/platform/net/http/bind"
	"rewardsched/internal/services/api/scheduler/domain"
)

func errUnknownFormat(f string) error {
	return perr.Validationf("output", "unknown output format %q, want json or yaml", f)
}

func logCtx(cmd *cobra.Command) *logger.Logger { return logger.C(cmd.Context()) }

// decode reads path (or stdin for -) and fills dst
// YAML is a superset of JSON so both go through the YAML parser,
// then through encoding/json so wire names and instant parsing match the HTTP API
func (a *app) decode(cmd *cobra.Command, path string, dst any) error {
	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return perr.JSONErrf("empty request")
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return perr.JSONErrf("invalid request document: %v", err)
	}
	j, err := json.Marshal(normalize(doc))
	if err != nil {
		return perr.JSONErrf("invalid request document: %v", err)
	}
	if err := json.Unmarshal(j, dst); err != nil {
		return perr.JSONErrf("invalid request: %v", err)
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "read %s", path)
	}
	return b, nil
}

// normalize turns YAML maps with non string keys into JSON friendly maps
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

// applyNow sets now from the flag, keeps a request value, or falls back to the clock
func (a *app) applyNow(flag string, now *domain.Instant) error {
	if flag != "" {
		t, err := clock.ParseInstant(flag)
		if err != nil {
			return perr.Validationf("now", "--now: %v", err)
		}
		*now = domain.At(t)
		return nil
	}
	if now.IsZero() {
		*now = domain.At(a.now())
	}
	return nil
}

func validate(v any) error { return bind.Validate(v) }

// print writes v in the selected format, YAML output goes through JSON for the same field names
func (a *app) print(v any) error {
	j, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if a.format == FormatYAML {
		var doc any
		if err := json.Unmarshal(j, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, j, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = a.out.Write(buf.Bytes())
	return err
}
