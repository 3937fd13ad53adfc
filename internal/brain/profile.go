package brain

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mindbackup/mindbackup/internal/storage"
)

// ProfileStore persists one UserProfile per user ID.
//
// Load never fails: missing or malformed stored data degrades to the global
// defaults, field by field. Save is last-writer-wins; there is no versioning.
type ProfileStore struct {
	kv  storage.KV
	log zerolog.Logger
}

// NewProfileStore creates a ProfileStore over the given KV backend.
func NewProfileStore(kv storage.KV, log zerolog.Logger) *ProfileStore {
	return &ProfileStore{kv: kv, log: log}
}

// Load returns the user's profile merged over the global defaults.
func (s *ProfileStore) Load(userID string) UserProfile {
	def := DefaultProfile()

	raw, found, err := s.kv.Get(storage.Key(userID, "profile"))
	if err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("profile read failed, using defaults")
		return def
	}
	if !found {
		return def
	}

	// Unmarshalling over a defaults-initialized struct keeps the default
	// for every key absent from the stored record.
	merged := def
	if err := json.Unmarshal(raw, &merged); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("profile corrupt, using defaults")
		return def
	}

	// Empty strings count as absent: the default survives.
	fillProfileDefaults(&merged, def)
	return merged
}

// Save overwrites the stored profile for userID.
func (s *ProfileStore) Save(userID string, p UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.Key(userID, "profile"), data)
}

// Update merges patch into the current profile, persists, and returns the
// merged result.
func (s *ProfileStore) Update(userID string, patch ProfilePatch) (UserProfile, error) {
	p := s.Load(userID)

	if patch.WakeTime != nil {
		p.WakeTime = *patch.WakeTime
	}
	if patch.SleepTime != nil {
		p.SleepTime = *patch.SleepTime
	}
	if patch.WorkStart != nil {
		p.WorkStart = *patch.WorkStart
	}
	if patch.BreakInterval != nil {
		p.BreakInterval = *patch.BreakInterval
	}
	if patch.NotificationLevel != nil {
		p.NotificationLevel = *patch.NotificationLevel
	}
	if patch.VoiceTone != nil {
		p.VoiceTone = *patch.VoiceTone
	}
	if patch.OfflineSyncInterval != nil {
		p.OfflineSyncInterval = *patch.OfflineSyncInterval
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}

	if err := s.Save(userID, p); err != nil {
		return p, err
	}
	return p, nil
}

func fillProfileDefaults(p *UserProfile, def UserProfile) {
	if p.WakeTime == "" {
		p.WakeTime = def.WakeTime
	}
	if p.SleepTime == "" {
		p.SleepTime = def.SleepTime
	}
	if p.WorkStart == "" {
		p.WorkStart = def.WorkStart
	}
	if p.BreakInterval == "" {
		p.BreakInterval = def.BreakInterval
	}
	if p.NotificationLevel == "" {
		p.NotificationLevel = def.NotificationLevel
	}
	if p.VoiceTone == "" {
		p.VoiceTone = def.VoiceTone
	}
	if p.OfflineSyncInterval == "" {
		p.OfflineSyncInterval = def.OfflineSyncInterval
	}
	if p.Theme == "" {
		p.Theme = def.Theme
	}
	if p.Language == "" {
		p.Language = def.Language
	}
}
