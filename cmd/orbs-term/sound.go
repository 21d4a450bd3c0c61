package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/tiltorbs/pkg/game"
)

const sampleRate = beep.SampleRate(44100)

// termSound 终端版音效，与图形版共用事件音调表
type termSound struct {
	enabled bool
}

func newTermSound(disabled bool) *termSound {
	if disabled {
		return &termSound{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// 没有声卡也能玩
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return &termSound{}
	}
	return &termSound{enabled: true}
}

func (s *termSound) play(events []game.Event) {
	if !s.enabled {
		return
	}
	for _, e := range events {
		tone, ok := game.ToneFor(e.Type)
		if !ok {
			continue
		}
		sine, err := generators.SineTone(sampleRate, tone.Frequency)
		if err != nil {
			log.Printf("[Sound] %v", err)
			continue
		}
		speaker.Play(beep.Take(sampleRate.N(time.Duration(tone.Duration*float64(time.Second))), sine))
	}
}

func (s *termSound) close() {
	if s.enabled {
		speaker.Close()
	}
}
