// Package analysis produces short tactical assessments of the target set.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"radar-sim/internal/target"
)

// SystemInstruction frames every assessment request.
const SystemInstruction = "You are an elite ELINT (Electronic Intelligence) officer. Be concise, technical, and alert."

// Status texts shown instead of a model answer.
const (
	StatusInitializing = "Initializing AI analysis module..."
	StatusNoSignals    = "No signals detected to analyze."
	StatusEmpty        = "Analysis failed to generate."
	StatusFailed       = "Critical error in analysis subsystem."
)

const promptPreamble = `Analyze the following radar signals and provide a brief strategic assessment (max 3 sentences).
Determine if there is a pattern suggesting a coordinated attack or civilian transit error.

DATA:
`

// Service turns a prompt into assessment text.
type Service interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt renders targets into the assessment request text.
func BuildPrompt(targets []target.Target) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	for i, t := range targets {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "ID: %s, Type: %s, Speed: %dkm/h, Alt: %dm, Threat: %s",
			t.ID, t.Type, t.Speed, t.Altitude, t.ThreatLevel)
	}
	return b.String()
}

// StaticService answers without a remote model. It is used when no API
// key is configured.
type StaticService struct{}

// Analyze counts signals per threat level in prompt and summarizes them.
func (StaticService) Analyze(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	counts := map[string]int{}
	total := 0
	for _, line := range strings.Split(prompt, "\n") {
		if !strings.HasPrefix(line, "ID: ") {
			continue
		}
		total++
		if i := strings.LastIndex(line, "Threat: "); i >= 0 {
			counts[strings.TrimSpace(line[i+len("Threat: "):])]++
		}
	}
	if total == 0 {
		return "", nil
	}
	high := counts[string(target.ThreatHigh)]
	switch {
	case high >= 2:
		return fmt.Sprintf("%d contacts tracked, %d rated high threat. Multiple high-threat tracks suggest possible coordination; recommend immediate escalation.", total, high), nil
	case high == 1:
		return fmt.Sprintf("%d contacts tracked, 1 rated high threat. Isolated hostile profile; maintain track and prepare intercept options.", total), nil
	default:
		return fmt.Sprintf("%d contacts tracked, none rated high threat (%d medium, %d low). Pattern consistent with routine transit.", total, counts[string(target.ThreatMedium)], counts[string(target.ThreatLow)]), nil
	}
}
