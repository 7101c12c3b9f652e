package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/idraw/engine/assets/loaders"
	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

const DefaultEventQueueSize = 256

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetOp uint8

const (
	AssetChanged AssetOp = iota
	AssetRemoved
)

func (op AssetOp) String() string {
	if op == AssetRemoved {
		return "removed"
	}
	return "changed"
}

// AssetEvent reports a file of a known type that changed on disk.
type AssetEvent struct {
	Path string
	Type metadata.ResourceType
	Op   AssetOp
}

// AssetManager indexes the asset directory and loads files by type. When
// watching, file changes are queued by the watcher goroutine and handed to
// the render goroutine by Drain.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	queue    *containers.RingQueue[AssetEvent]
}

func NewAssetManager(queueSize int) *AssetManager {
	if queueSize <= 0 {
		queueSize = DefaultEventQueueSize
	}
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		queue:   containers.NewRingQueue[AssetEvent](queueSize),
	}
	am.RegisterLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.RegisterLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.RegisterLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.RegisterLoader(metadata.ResourceTypeSystemFont, &loaders.SystemFontLoader{})
	return am
}

// Initialize indexes assetsDir and, with watch set, starts watching it and
// all its sub-directories.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	if !watch {
		return am.index(assetsDir)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = w
	am.done = make(chan struct{})
	am.stopped = make(chan struct{})
	if err := am.watchRecursive(assetsDir, false); err != nil {
		_ = w.Close()
		am.fsnotify = nil
		return err
	}
	go am.start()
	core.LogInfo("watching '%s' for asset changes", assetsDir)
	return nil
}

// Shutdown stops the watcher goroutine.
func (am *AssetManager) Shutdown() error {
	if am.fsnotify == nil || am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	<-am.stopped
	return nil
}

// RegisterLoader replaces the loader used for a resource type.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Load reads the file at path with the loader registered for its type.
func (am *AssetManager) Load(path string, params interface{}) (*metadata.Resource, error) {
	assetType := DetermineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return nil, fmt.Errorf("unknown asset type for '%s'", path)
	}

	am.mutex.Lock()
	loader, ok := am.loaders[assetType]
	if ok {
		am.assets[path] = AssetInfo{Path: path, Type: assetType, LastLoaded: time.Now()}
	}
	am.mutex.Unlock()
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %s", assetType)
	}
	return loader.Load(path, assetType, params)
}

func (am *AssetManager) Unload(res *metadata.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return nil
	}
	return loader.Unload(res)
}

// Lookup returns what the index knows about path.
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	a, ok := am.assets[path]
	return a, ok
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Drain hands every queued event to fn, oldest first, and returns how many
// there were. Call it from the render goroutine.
func (am *AssetManager) Drain(fn func(AssetEvent)) int {
	n := 0
	for {
		e, err := am.queue.Dequeue()
		if err != nil {
			return n
		}
		fn(e)
		n++
	}
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			_ = am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("failed to watch '%s': %s", e.Name, err)
			}
		}
		return
	}
	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if t := am.handleFileEvent(e.Name); t != metadata.ResourceTypeNone {
			am.enqueue(AssetEvent{Path: e.Name, Type: t, Op: AssetChanged})
		}
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Can't stat a deleted path, so it may have been a directory.
		_ = am.fsnotify.Remove(e.Name)
		if t := am.removeAsset(e.Name); t != metadata.ResourceTypeNone {
			am.enqueue(AssetEvent{Path: e.Name, Type: t, Op: AssetRemoved})
		}
	}
}

func (am *AssetManager) enqueue(e AssetEvent) {
	if err := am.queue.Enqueue(e); errors.Is(err, containers.ErrQueueFull) {
		core.LogWarn("asset event queue full, dropping %s event for '%s'", e.Op, e.Path)
	}
}

// index records every file under path without watching it.
func (am *AssetManager) index(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			am.handleFileEvent(walkPath)
			return nil
		}
		if unWatch {
			return am.fsnotify.Remove(walkPath)
		}
		return am.fsnotify.Add(walkPath)
	})
}

// handleFileEvent indexes path and returns its type.
func (am *AssetManager) handleFileEvent(path string) metadata.ResourceType {
	assetType := DetermineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	a := am.assets[path]
	a.Path = path
	a.Type = assetType
	am.assets[path] = a
	return assetType
}

func (am *AssetManager) removeAsset(path string) metadata.ResourceType {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	a, ok := am.assets[path]
	if !ok {
		return metadata.ResourceTypeNone
	}
	delete(am.assets, path)
	return a.Type
}

func DetermineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	case ".ttf", ".otf":
		return metadata.ResourceTypeSystemFont
	case ".txt", ".toml":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}
