package service

import "log"

// Effect names form a small closed set. The sink is fire-and-forget: no
// return value, no completion ordering guaranteed relative to the caller.
const (
	EffectSuccess = "success"
	EffectClick   = "click"
	EffectError   = "error"
)

// FeedbackSink receives celebratory and UI cues. The kiosk frontend
// renders them (sound, confetti); the server side only emits.
type FeedbackSink interface {
	Trigger(effect string)
}

// LogFeedbackSink is the default sink: it just records the cue.
type LogFeedbackSink struct{}

// Trigger logs the effect name.
func (LogFeedbackSink) Trigger(effect string) {
	log.Printf("[Feedback] effect=%s", effect)
}
