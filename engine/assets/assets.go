package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
	"github.com/spaghettifunk/meshtools/engine/core"
)

var ErrWatcherClosed = errors.New("assets: watcher already closed")

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// Change is a create, write or remove of a tracked asset.
type Change struct {
	Path string
	Type AssetType
	Op   fsnotify.Op
}

// AssetManager indexes model and config files under the watched
// directories, loads models on demand and reports changes to them.
type AssetManager struct {
	assets map[string]AssetInfo
	models ModelLoader

	mutex sync.RWMutex

	started  sync.Once
	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan Change
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		models:   &loaders.ModelLoader{},
		fsnotify: fsWatch,
		changes:  make(chan Change, 16),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes and watches each directory recursively.
func (am *AssetManager) Initialize(dirs ...string) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return ErrWatcherClosed
	}
	am.started.Do(func() { go am.start() })

	for _, dir := range dirs {
		if err := am.addRecursive(dir); err != nil {
			return err
		}
	}
	return nil
}

// Changes delivers tracked asset changes. It is closed by Shutdown.
func (am *AssetManager) Changes() <-chan Change {
	return am.changes
}

// Errors delivers watcher errors. It is closed by Shutdown.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Asset reports what the index knows about path.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// LoadModel reads a glTF model. Paths outside the watched directories are
// loaded too, they are just not tracked for changes.
func (am *AssetManager) LoadModel(path string) (*loaders.Model, error) {
	if t := determineAssetType(path); t != AssetTypeModel {
		return nil, fmt.Errorf("assets: %s is not a model file", path)
	}
	md, err := am.models.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[filepath.Clean(path)] = AssetInfo{Path: path, Type: AssetTypeModel, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return md, nil
}

// Shutdown stops watching and closes the Changes and Errors channels.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return ErrWatcherClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	// Without a running event loop nobody else releases the watcher.
	am.started.Do(func() {
		am.fsnotify.Close()
		close(am.changes)
		close(am.errors)
	})
	return nil
}

func (am *AssetManager) addRecursive(name string) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return ErrWatcherClosed
	}
	return am.watchRecursive(name)
}

func (am *AssetManager) start() {
	defer func() {
		am.fsnotify.Close()
		close(am.changes)
		close(am.errors)
	}()

	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}

			assetType := determineAssetType(e.Name)
			if assetType == AssetTypeNone {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}
			core.LogDebug("asset %s changed (%s)", e.Name, e.Op)

			select {
			case am.changes <- Change{Path: e.Name, Type: assetType, Op: e.Op}:
			case <-am.done:
				return
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			select {
			case am.errors <- err:
			default:
			}

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds every directory under path to the watch list and
// indexes the asset files it finds.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	path = filepath.Clean(path)
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}
