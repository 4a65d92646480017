package plugin

import (
	"fmt"
	"sync"

	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/framework/plugin"
)

// ClassCategory is the category reported for every class.
const ClassCategory = "Audio Module Class"

// ManyInstances is the cardinality of a class that may be instantiated any
// number of times.
const ManyInstances int32 = 0x7FFFFFFF

// FactoryInfo describes the vendor of the factory
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

// ClassInfo describes the single class exported by the factory
type ClassInfo struct {
	CID         [16]byte
	Cardinality int32
	Category    string
	Name        string
}

// Config controls component defaults used before the host calls
// SetupProcessing.
type Config struct {
	DefaultSampleRate   float64
	DefaultBlockSize    int32
	MaxParameterChanges int
}

var (
	factoryMu sync.RWMutex

	// Global plugin instance
	globalPlugin Plugin

	globalFactoryInfo = FactoryInfo{
		Vendor: "Percussa",
		URL:    "https://www.percussa.com",
		Email:  "support@percussa.com",
	}

	globalConfig = Config{
		DefaultSampleRate:   48000,
		DefaultBlockSize:    128,
		MaxParameterChanges: 128,
	}
)

// Register sets the global plugin instance
func Register(p Plugin) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	globalPlugin = p
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	globalFactoryInfo = info
}

// SetConfig sets the global component configuration. Zero fields keep
// their current value.
func SetConfig(cfg Config) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if cfg.DefaultSampleRate > 0 {
		globalConfig.DefaultSampleRate = cfg.DefaultSampleRate
	}
	if cfg.DefaultBlockSize > 0 {
		globalConfig.DefaultBlockSize = cfg.DefaultBlockSize
	}
	if cfg.MaxParameterChanges > 0 {
		globalConfig.MaxParameterChanges = cfg.MaxParameterChanges
	}
}

// GetFactoryInfo returns the factory information
func GetFactoryInfo() FactoryInfo {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return globalFactoryInfo
}

func currentConfig() Config {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return globalConfig
}

func registered() Plugin {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return globalPlugin
}

// CountClasses returns the number of classes exported by the factory
func CountClasses() int {
	if registered() == nil {
		return 0
	}
	return 1
}

// GetClassInfo returns the class at index
func GetClassInfo(index int) (ClassInfo, error) {
	p := registered()
	if p == nil || index != 0 {
		return ClassInfo{}, fmt.Errorf("class index %d: %w", index, ErrInvalidArgument)
	}
	info := p.GetInfo()
	return ClassInfo{
		CID:         info.UID(),
		Cardinality: ManyInstances,
		Category:    ClassCategory,
		Name:        info.Name,
	}, nil
}

// CreateInstance creates a component for the class id
func CreateInstance(cid [16]byte) (*Component, error) {
	p := registered()
	if p == nil {
		return nil, ErrUnknownClass
	}

	info := p.GetInfo()
	if cid != info.UID() {
		return nil, fmt.Errorf("%w: %x", ErrUnknownClass, cid)
	}

	processor, err := p.CreateProcessor()
	if err != nil {
		debug.WithFields(debug.Fields{
			"plugin": info.ID,
			"error":  err,
		}).Error("processor creation failed")
		return nil, fmt.Errorf("create processor for %s: %w", info.ID, err)
	}

	return NewComponent(info, processor), nil
}

// NewPlugin wraps info and a processor constructor into a Plugin.
func NewPlugin(info plugin.Info, create func() (Processor, error)) Plugin {
	return &funcPlugin{info: info, create: create}
}

type funcPlugin struct {
	info   plugin.Info
	create func() (Processor, error)
}

func (p *funcPlugin) GetInfo() plugin.Info { return p.info }

func (p *funcPlugin) CreateProcessor() (Processor, error) { return p.create() }
