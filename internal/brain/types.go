// Package brain holds MindBackup's domain types and the per-user stores
// (memories, profile, chat log) plus the pure stats/personality derivations.
package brain

import "time"

// MemoryType classifies a captured memory.
type MemoryType string

const (
	TypeNote     MemoryType = "NOTE"
	TypeTask     MemoryType = "TASK"
	TypeLocation MemoryType = "LOCATION"
	TypeEvent    MemoryType = "EVENT"
	TypeDocument MemoryType = "DOCUMENT"
)

// ValidMemoryType returns true if t is a recognised memory type.
func ValidMemoryType(t MemoryType) bool {
	switch t {
	case TypeNote, TypeTask, TypeLocation, TypeEvent, TypeDocument:
		return true
	}
	return false
}

// Priority grades how urgent a task is.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ValidPriority returns true if p is a recognised priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Status is the completion state of a TASK memory.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusDone    Status = "DONE"
)

// Metadata carries the optional structured fields of a memory. A memory
// without metadata has the nil pointer; ToggleStatus treats that as a no-op.
type Metadata struct {
	Location    string   `json:"location,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	DocumentURL string   `json:"documentUrl,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// Memory is a single captured unit: a note, task, event, location, or
// scanned document.
type Memory struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Type      MemoryType `json:"type"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	Metadata  *Metadata  `json:"metadata,omitempty"`
}

// MemoryPatch is a partial memory update. Nil fields keep the current value.
type MemoryPatch struct {
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// UserProfile is the per-user routine and assistant behaviour configuration.
type UserProfile struct {
	WakeTime            string `json:"wakeTime"`
	SleepTime           string `json:"sleepTime"`
	WorkStart           string `json:"workStart"`
	BreakInterval       string `json:"breakInterval"`
	NotificationLevel   string `json:"notificationLevel"` // silent, medium, strict
	VoiceTone           string `json:"voiceTone"`         // friendly, mentor, strict
	OfflineSyncInterval string `json:"offlineSyncInterval"`
	Theme               string `json:"theme,omitempty"`    // light, dark, system
	Language            string `json:"language,omitempty"` // en, hi, auto
}

// DefaultProfile returns the manufacturer-level profile every user starts
// from. Reading a profile always resolves to these values merged with
// whatever partial data is stored.
func DefaultProfile() UserProfile {
	return UserProfile{
		WakeTime:            "06:30",
		SleepTime:           "23:30",
		WorkStart:           "09:00",
		BreakInterval:       "45 minutes",
		NotificationLevel:   "medium",
		VoiceTone:           "friendly",
		OfflineSyncInterval: "8 hours",
		Theme:               "system",
		Language:            "auto",
	}
}

// ProfilePatch is a partial profile update. Nil fields keep the current value.
type ProfilePatch struct {
	WakeTime            *string `json:"wakeTime,omitempty"`
	SleepTime           *string `json:"sleepTime,omitempty"`
	WorkStart           *string `json:"workStart,omitempty"`
	BreakInterval       *string `json:"breakInterval,omitempty"`
	NotificationLevel   *string `json:"notificationLevel,omitempty"`
	VoiceTone           *string `json:"voiceTone,omitempty"`
	OfflineSyncInterval *string `json:"offlineSyncInterval,omitempty"`
	Theme               *string `json:"theme,omitempty"`
	Language            *string `json:"language,omitempty"`
}

// UserStats summarises a user's activity for the dashboard. It is derived
// from the memory list on every load, never treated as ground truth.
type UserStats struct {
	MemoriesCaptured  int       `json:"memoriesCaptured"`
	TasksCompleted    int       `json:"tasksCompleted"`
	StreakDays        int       `json:"streakDays"`
	ProductivityScore int       `json:"productivityScore"` // 20-100
	LastActive        time.Time `json:"lastActive"`
}

// InitialStats is what a brand-new user starts with.
func InitialStats(now time.Time) UserStats {
	return UserStats{
		MemoriesCaptured:  0,
		TasksCompleted:    0,
		StreakDays:        1,
		ProductivityScore: 60,
		LastActive:        now,
	}
}

// PersonalityMode is the assistant's current tone, derived from stats.
type PersonalityMode string

const (
	PersonalityFriendly PersonalityMode = "FRIENDLY"
	PersonalityStrict   PersonalityMode = "STRICT"
	PersonalityMentor   PersonalityMode = "MENTOR"
	PersonalityFunny    PersonalityMode = "FUNNY"
	PersonalitySilent   PersonalityMode = "SILENT"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "ai"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleSlotType classifies a generated schedule slot.
type ScheduleSlotType string

const (
	SlotWork     ScheduleSlotType = "work"
	SlotBreak    ScheduleSlotType = "break"
	SlotPersonal ScheduleSlotType = "personal"
)

// ValidSlotType returns true if t is a recognised slot type.
func ValidSlotType(t ScheduleSlotType) bool {
	switch t {
	case SlotWork, SlotBreak, SlotPersonal:
		return true
	}
	return false
}

// ScheduleSlot is one entry of a generated day plan.
type ScheduleSlot struct {
	Time string           `json:"time"`
	Task string           `json:"task"`
	Type ScheduleSlotType `json:"type"`
}

// DaySchedule is the AI-generated plan for a single day.
type DaySchedule struct {
	Date  string         `json:"date"`
	Slots []ScheduleSlot `json:"slots"`
}
