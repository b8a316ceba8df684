package breakout

import (
	"bytes"
	"embed"
	"fmt"
	_ "image/png"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"breakout/internal/scene"
)

//go:embed assets/images
var assetsFS embed.FS

// ResourceType 定义资源类型，值与场景中使用的图片名一致
type ResourceType string

const (
	ResourceBall  ResourceType = scene.BallName
	ResourceBlock ResourceType = scene.BlockName
	ResourceBoard ResourceType = scene.BoardName
)

var allResources = []ResourceType{ResourceBall, ResourceBlock, ResourceBoard}

// ResourceManager 资源管理器
type ResourceManager struct {
	cache  map[ResourceType]*ebiten.Image
	mutex  sync.RWMutex
	loaded bool
	log    logrus.FieldLogger
}

// NewResourceManager 创建新的资源管理器
func NewResourceManager(log logrus.FieldLogger) *ResourceManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ResourceManager{
		cache: make(map[ResourceType]*ebiten.Image),
		log:   log,
	}
}

// LoadResource 加载单个资源
func (rm *ResourceManager) LoadResource(resourceType ResourceType) (*ebiten.Image, error) {
	rm.mutex.RLock()
	if img, exists := rm.cache[resourceType]; exists {
		rm.mutex.RUnlock()
		return img, nil
	}
	rm.mutex.RUnlock()

	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	// 双重检查，防止并发加载同一资源
	if img, exists := rm.cache[resourceType]; exists {
		return img, nil
	}

	img, err := rm.decode(resourceType)
	if err != nil {
		return nil, err
	}
	rm.cache[resourceType] = img
	rm.log.WithField("resource", resourceType).Debug("loaded resource")
	return img, nil
}

// Texture 供场景按名称预加载图片
func (rm *ResourceManager) Texture(name string) (scene.Texture, error) {
	img, err := rm.LoadResource(ResourceType(name))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// PreloadResources 预加载所有资源
func (rm *ResourceManager) PreloadResources() error {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	if rm.loaded {
		return nil
	}

	for _, resourceType := range allResources {
		if _, ok := rm.cache[resourceType]; ok {
			continue
		}
		img, err := rm.decode(resourceType)
		if err != nil {
			return err
		}
		rm.cache[resourceType] = img
	}

	rm.loaded = true
	rm.log.WithField("count", len(rm.cache)).Info("resources preloaded")
	return nil
}

// GetResource 获取已加载的资源，失败时返回 nil
func (rm *ResourceManager) GetResource(resourceType ResourceType) *ebiten.Image {
	img, err := rm.LoadResource(resourceType)
	if err != nil {
		rm.log.WithError(err).WithField("resource", resourceType).Warn("failed to load resource")
		return nil
	}
	return img
}

// IsResourceLoaded 检查资源是否已加载
func (rm *ResourceManager) IsResourceLoaded(resourceType ResourceType) bool {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	_, exists := rm.cache[resourceType]
	return exists
}

// decode 从嵌入文件系统读取并创建图像，调用方需持有写锁
func (rm *ResourceManager) decode(resourceType ResourceType) (*ebiten.Image, error) {
	path, err := resourcePath(resourceType)
	if err != nil {
		return nil, err
	}

	b, err := assetsFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", resourceType, err)
	}

	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create image for %s: %w", resourceType, err)
	}
	return img, nil
}

// resourcePath 获取资源路径
func resourcePath(resourceType ResourceType) (string, error) {
	switch resourceType {
	case ResourceBall:
		return "assets/images/ball.png", nil
	case ResourceBlock:
		return "assets/images/block.png", nil
	case ResourceBoard:
		return "assets/images/board.png", nil
	default:
		return "", fmt.Errorf("unknown resource type: %s", resourceType)
	}
}
