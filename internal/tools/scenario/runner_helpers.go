package scenario

import (
	"fmt"
	"strings"

	"github.com/louisbranch/nback-engine/internal/adaptive"
	"github.com/louisbranch/nback-engine/internal/profile"
	"github.com/louisbranch/nback-engine/internal/session"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func (r *Runner) ensureSession(state *scenarioState) error {
	if state.session == nil {
		return r.failf("session step must come first")
	}
	return nil
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	default:
		return fallback
	}
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	typed, ok := value.(bool)
	if !ok {
		return fallback
	}
	return typed
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key]
	if !ok {
		return false, false
	}
	typed, ok := value.(bool)
	if !ok {
		return false, false
	}
	return typed, true
}

func readFloat(args map[string]any, key string) (float64, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	default:
		return 0, false
	}
}

func parseMode(value string) (session.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "batch":
		return session.ModeBatch, nil
	case "streaming", "stream":
		return session.ModeStreaming, nil
	default:
		return session.ModeUnspecified, fmt.Errorf("unsupported mode %q", value)
	}
}

func parseProfileName(value string) (profile.Name, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return profile.NameEasy, nil
	case "medium":
		return profile.NameMedium, nil
	case "hard":
		return profile.NameHard, nil
	default:
		return "", fmt.Errorf("unsupported profile %q", value)
	}
}

func parseAction(value string) (adaptive.Action, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "increase":
		return adaptive.ActionIncrease, nil
	case "decrease":
		return adaptive.ActionDecrease, nil
	case "maintain":
		return adaptive.ActionMaintain, nil
	default:
		return adaptive.ActionUnspecified, fmt.Errorf("unsupported action %q", value)
	}
}

func parseUrgency(value string) (adaptive.Urgency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return adaptive.UrgencyNone, nil
	case "medium":
		return adaptive.UrgencyMedium, nil
	case "high":
		return adaptive.UrgencyHigh, nil
	default:
		return adaptive.UrgencyNone, fmt.Errorf("unsupported urgency %q", value)
	}
}
