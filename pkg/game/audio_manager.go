package game

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// Tone 一个合成音效：正弦波 + 指数衰减包络
type Tone struct {
	Frequency float64 // Hz
	Duration  float64 // 秒
}

// eventTones 每种会话事件对应的提示音
// 没有列出的事件静音
var eventTones = map[EventType]Tone{
	EventTargetCollected: {Frequency: 880, Duration: 0.1},
	EventLevelUp:         {Frequency: 1320, Duration: 0.25},
	EventBonusCollected:  {Frequency: 1100, Duration: 0.15},
	EventBorderPenalty:   {Frequency: 330, Duration: 0.12},
	EventGameOver:        {Frequency: 220, Duration: 0.5},
}

// ToneFor 返回事件对应的提示音
func ToneFor(t EventType) (Tone, bool) {
	tone, ok := eventTones[t]
	return tone, ok
}

// AudioManager 音频管理器
// 职责：
//   - 启动时为每种事件合成一次 PCM 并缓存播放器
//   - 每帧消费会话事件并播放对应提示音
//   - 音量和开关控制
//
// 没有音频上下文时（测试、无声卡环境）所有播放请求静默失败。
type AudioManager struct {
	context *audio.Context
	players map[EventType]*audio.Player
	enabled bool
	volume  float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
func NewAudioManager(ctx *audio.Context) *AudioManager {
	am := &AudioManager{
		context: ctx,
		players: make(map[EventType]*audio.Player),
		enabled: true,
		volume:  0.6,
	}
	if ctx == nil {
		log.Printf("[AudioManager] No audio context, running silent")
		return am
	}
	for event, tone := range eventTones {
		am.players[event] = ctx.NewPlayerFromBytes(SynthesizeTone(tone, ctx.SampleRate()))
	}
	log.Printf("[AudioManager] Synthesized %d tones", len(am.players))
	return am
}

// PlayEvent 播放事件对应的提示音
func (am *AudioManager) PlayEvent(t EventType) bool {
	if !am.enabled {
		return false
	}
	player, ok := am.players[t]
	if !ok {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind tone %s: %v", t, err)
	}
	player.Play()
	return true
}

// HandleEvents 依次播放一批事件的提示音
func (am *AudioManager) HandleEvents(events []Event) {
	for _, e := range events {
		am.PlayEvent(e.Type)
	}
}

// SetEnabled 开关音效
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled 音效是否开启
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}

// SetVolume 设置音量 (0.0 ~ 1.0)，超出范围时截断
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// Volume 当前音量
func (am *AudioManager) Volume() float64 {
	return am.volume
}

// SynthesizeTone 生成 16 位小端双声道 PCM
func SynthesizeTone(tone Tone, sampleRate int) []byte {
	if sampleRate <= 0 || tone.Duration <= 0 {
		return nil
	}
	n := int(float64(sampleRate) * tone.Duration)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-3 * t)
		v := int16(math.Sin(2*math.Pi*tone.Frequency*t) * 6000 * envelope)
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}
