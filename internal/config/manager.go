package config

import "sync/atomic"

// ConfigManager holds the active configuration.
type ConfigManager struct {
	config atomic.Pointer[Config]
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

func (cm *ConfigManager) SetConfig(cfg *Config) {
	cm.config.Store(cfg)
}

func (cm *ConfigManager) GetConfig() *Config {
	return cm.config.Load()
}

// InitConfig loads the configuration for workingDir and makes it active.
func (cm *ConfigManager) InitConfig(workingDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, debug)
	if err != nil {
		return nil, err
	}
	cm.SetConfig(cfg)
	return cfg, nil
}

// Reset clears the configuration.
func (cm *ConfigManager) Reset() {
	cm.config.Store(nil)
}

var defaultManager = NewConfigManager()

func Init(workingDir string, debug bool) (*Config, error) {
	return defaultManager.InitConfig(workingDir, debug)
}

// Get returns the active configuration, or nil before [Init].
func Get() *Config {
	return defaultManager.GetConfig()
}

// Set replaces the active configuration, e.g. after a reload.
func Set(cfg *Config) {
	defaultManager.SetConfig(cfg)
}
