package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PresetManager 动画预设管理器
//
// 职责：
//   - 从单文件或目录加载全部预设并按名称索引
//   - 可选的热重载：监听目录变化，配置文件改动后自动重新加载
//
// 读写锁保护索引，Get/Names 可在渲染循环中随时调用。
type PresetManager struct {
	mu      sync.RWMutex
	presets map[string]AnimPreset
	dir     string

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

// NewPresetManager 创建空的预设管理器
func NewPresetManager() *PresetManager {
	return &PresetManager{
		presets: make(map[string]AnimPreset),
	}
}

// LoadFile 加载单个预设文件，同名预设覆盖旧值
func (pm *PresetManager) LoadFile(path string) error {
	presets, err := LoadPresetFile(path)
	if err != nil {
		return err
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, p := range presets {
		pm.presets[p.Name] = p
	}
	return nil
}

// LoadDir 加载目录下的全部 YAML 预设文件（*.yaml / *.yml）
// 全量替换当前索引；任何一个文件非法则整体失败，索引保持不变
func (pm *PresetManager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read preset directory %s: %w", dir, err)
	}

	loaded := make(map[string]AnimPreset)
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		presets, err := LoadPresetFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		for _, p := range presets {
			loaded[p.Name] = p
		}
	}

	pm.mu.Lock()
	pm.presets = loaded
	pm.dir = dir
	pm.mu.Unlock()

	log.Printf("[PresetManager] 从 %s 加载了 %d 个动画预设", dir, len(loaded))
	return nil
}

// Get 按名称查询预设（返回副本）
func (pm *PresetManager) Get(name string) (AnimPreset, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.presets[name]
	return p, ok
}

// Names 返回全部预设名称（升序）
func (pm *PresetManager) Names() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	names := make([]string, 0, len(pm.presets))
	for name := range pm.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count 返回预设数量
func (pm *PresetManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.presets)
}

// Watch 开启目录热重载
//
// 先做一次全量加载，然后在后台 goroutine 里监听目录：
// YAML 文件的写入/创建/删除/改名触发整目录重新加载（100ms 去抖）。
// 重载失败只记日志，保留上一份合法索引。
func (pm *PresetManager) Watch(dir string) error {
	if err := pm.LoadDir(dir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create preset watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch preset directory %s: %w", dir, err)
	}

	pm.watcher = watcher
	pm.done = make(chan struct{})
	go pm.watchLoop(dir)
	return nil
}

// watchLoop 热重载事件循环
func (pm *PresetManager) watchLoop(dir string) {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-pm.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			// 编辑器保存往往产生连续多个事件，100ms 内的重复触发合并
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now

			if err := pm.LoadDir(dir); err != nil {
				log.Printf("[PresetManager] 热重载失败: %v (保留上一份配置)", err)
			}
		case err, ok := <-pm.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[PresetManager] 监听错误: %v", err)
		case <-pm.done:
			return
		}
	}
}

// Close 停止热重载（可重复调用）
func (pm *PresetManager) Close() error {
	var err error
	pm.closeOnce.Do(func() {
		if pm.done != nil {
			close(pm.done)
		}
		if pm.watcher != nil {
			err = pm.watcher.Close()
		}
	})
	return err
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
