package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/adhdo-app/adhdo/internal/common"
	"github.com/adhdo-app/adhdo/internal/models"
	"github.com/adhdo-app/adhdo/internal/repositories/settings"
)

// SettingKeys lists the keys SettingsService accepts.
var SettingKeys = []string{
	common.SettingAdProbability,
	common.SettingVisibilityProbability,
	common.SettingShuffle,
}

// SettingsService persists feed preferences as strings in the settings table.
type SettingsService struct {
	repo settings.Repository
}

func NewSettingsService(repo settings.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Set validates and stores value under key.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !slices.Contains(SettingKeys, key) {
		return fmt.Errorf("%w: %q", common.ErrUnknownSetting, key)
	}
	if err := validateSetting(key, value); err != nil {
		return err
	}
	return s.repo.Set(ctx, key, []byte(value))
}

// Reset removes a stored value so the configuration default applies again.
func (s *SettingsService) Reset(ctx context.Context, key string) error {
	if !slices.Contains(SettingKeys, key) {
		return fmt.Errorf("%w: %q", common.ErrUnknownSetting, key)
	}
	return s.repo.Delete(ctx, key)
}

// All returns every stored setting.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	raw, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	return out, nil
}

// Feed loads the persisted feed preferences. Unparseable values are treated
// as unset.
func (s *SettingsService) Feed(ctx context.Context) (models.FeedSettings, error) {
	var fs models.FeedSettings
	all, err := s.All(ctx)
	if err != nil {
		return fs, err
	}
	if v, ok := all[common.SettingAdProbability]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			fs.AdProbability = &n
		}
	}
	if v, ok := all[common.SettingVisibilityProbability]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			fs.VisibilityProbability = &n
		}
	}
	if v, ok := all[common.SettingShuffle]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			fs.Shuffle = &b
		}
	}
	return fs, nil
}

func validateSetting(key, value string) error {
	switch key {
	case common.SettingShuffle:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, err)
		}
	default:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%s expects an integer percentage: %w", key, err)
		}
	}
	return nil
}
