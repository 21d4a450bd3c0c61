package game

// EventType 会话事件类型
// 渲染层（音效、闪烁提示）在每帧结束时读取事件，核心逻辑不依赖它们
type EventType int

const (
	EventSessionStarted EventType = iota
	EventTargetCollected
	EventLevelUp
	EventBonusCollected
	EventBorderPenalty
	EventGameOver
)

// String 返回事件名称
func (t EventType) String() string {
	switch t {
	case EventSessionStarted:
		return "session_started"
	case EventTargetCollected:
		return "target_collected"
	case EventLevelUp:
		return "level_up"
	case EventBonusCollected:
		return "bonus_collected"
	case EventBorderPenalty:
		return "border_penalty"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event 一次会话事件，携带事件发生后的关卡和分数
type Event struct {
	Type   EventType
	Level  int
	Score  int
	Reason GameOverReason // 仅 EventGameOver 有效
}

// maxPendingEvents 未被读取的事件上限，防止没有渲染层消费时无限增长
const maxPendingEvents = 64

func (s *GameSession) emit(e Event) {
	if len(s.events) >= maxPendingEvents {
		s.events = s.events[1:]
	}
	s.events = append(s.events, e)
}

// DrainEvents 取出并清空待处理事件
func (s *GameSession) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	events := s.events
	s.events = nil
	return events
}
