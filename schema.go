package pullsync

import (
	"fmt"
	"strings"
)

// ValidationError holds every schema violation found in a config object.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks an untyped config object against the pull config schema
// and returns the typed value with defaults applied. Unknown keys are ignored.
// On failure the error is a *ValidationError.
func Validate(raw map[string]any) (*PullConfig, error) {
	var errs []string
	cfg := &PullConfig{
		Label:         DefaultLabel,
		ConflictLabel: DefaultConflictLabel,
	}

	switch v := raw["version"].(type) {
	case string:
		if v != SchemaVersion {
			errs = append(errs, fmt.Sprintf("unsupported version %q: only version %q is supported", v, SchemaVersion))
		}
		cfg.Version = v
	case nil:
		errs = append(errs, "'version' is required")
	default:
		errs = append(errs, fmt.Sprintf("'version' must be the string %q, got %T", SchemaVersion, v))
	}

	switch rules := raw["rules"].(type) {
	case []any:
		if len(rules) == 0 {
			errs = append(errs, "at least one rule is required")
		}
		for i, item := range rules {
			rule, ruleErrs := validateRule(item, fmt.Sprintf("rules[%d]", i))
			errs = append(errs, ruleErrs...)
			cfg.Rules = append(cfg.Rules, rule)
		}
	case nil:
		errs = append(errs, "'rules' is required")
	default:
		errs = append(errs, fmt.Sprintf("'rules' must be a list, got %T", rules))
	}

	if label, ok, err := optionalString(raw, "label"); err != "" {
		errs = append(errs, err)
	} else if ok {
		cfg.Label = label
	}
	if label, ok, err := optionalString(raw, "conflictLabel"); err != "" {
		errs = append(errs, err)
	} else if ok {
		cfg.ConflictLabel = label
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return cfg, nil
}

func validateRule(item any, prefix string) (SyncRule, []string) {
	var errs []string
	rule := SyncRule{
		MergeMethod:       MergeMethodNone,
		Assignees:         []string{},
		Reviewers:         []string{},
		ConflictReviewers: []string{},
	}

	fields, ok := item.(map[string]any)
	if !ok {
		return rule, []string{fmt.Sprintf("%s: must be a mapping, got %T", prefix, item)}
	}

	for _, key := range []string{"base", "upstream"} {
		value, present, err := optionalString(fields, key)
		switch {
		case err != "":
			errs = append(errs, prefix+": "+err)
		case !present || value == "":
			errs = append(errs, fmt.Sprintf("%s: '%s' is required", prefix, key))
		case key == "base":
			rule.Base = value
		default:
			rule.Upstream = value
		}
	}

	if method, ok, err := optionalString(fields, "mergeMethod"); err != "" {
		errs = append(errs, prefix+": "+err)
	} else if ok {
		m, perr := ParseMergeMethod(method)
		if perr != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, perr))
		}
		rule.MergeMethod = m
	}

	switch v := fields["mergeUnstable"].(type) {
	case nil:
	case bool:
		rule.MergeUnstable = v
	default:
		errs = append(errs, fmt.Sprintf("%s: 'mergeUnstable' must be a boolean, got %T", prefix, v))
	}

	lists := []struct {
		key string
		dst *[]string
	}{
		{"assignees", &rule.Assignees},
		{"reviewers", &rule.Reviewers},
		{"conflictReviewers", &rule.ConflictReviewers},
	}
	for _, l := range lists {
		list, err := optionalStringList(fields, l.key)
		if err != "" {
			errs = append(errs, prefix+": "+err)
			continue
		}
		if list != nil {
			*l.dst = list
		}
	}

	return rule, errs
}

// optionalString returns fields[key] when it is a string.
// err is non-empty when the key is present with another type.
func optionalString(fields map[string]any, key string) (value string, present bool, err string) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false, ""
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Sprintf("'%s' must be a string, got %T", key, v)
	}
	return s, true, ""
}

// optionalStringList returns fields[key] as a string slice, or nil when absent.
func optionalStringList(fields map[string]any, key string) ([]string, string) {
	switch v := fields[key].(type) {
	case nil:
		return nil, ""
	case []string:
		return append([]string{}, v...), ""
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Sprintf("'%s[%d]' must be a string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, ""
	default:
		return nil, fmt.Sprintf("'%s' must be a list of strings, got %T", key, v)
	}
}
