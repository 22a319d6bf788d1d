// cmd/animation_showcase
// 动画引擎演示程序
//
// 在一个网格里摆放若干方块，每个方块套用不同的动画预设，
// 用方向键移动"观察者"可以直观看到距离裁剪的效果。
//
// 快捷键：
//   - 方向键：移动观察者
//   - Tab：切换统计叠层
//   - +/-：调整裁剪距离（自动保存设置）
//   - R：重新套用全部预设
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/procanim/pkg/anim"
	"github.com/gonewx/procanim/pkg/config"
	"github.com/gonewx/procanim/pkg/game"
	"github.com/gonewx/procanim/pkg/presets"
)

const (
	screenWidth  = 800
	screenHeight = 600

	gridColumns = 5
	gridRows    = 4
	cellWidth   = 140
	cellHeight  = 120
	spriteSize  = 40.0

	viewerSpeed = 240.0 // 观察者移动速度（像素/秒）
)

// Sprite 演示用的场景对象
//
// Position 是网格上的静止位置（供引擎的裁剪判定读取），
// 预设动画驱动的是 Offset/Rotation/Scale/Alpha 等属性，
// 绘制时在静止位置上叠加偏移。
type Sprite struct {
	Position struct {
		X float64
		Y float64
		Z float64
	}
	Offset struct {
		X float64
		Y float64
	}
	Rotation struct {
		Z float64
	}
	Scale struct {
		X float64
		Y float64
	}
	Alpha float64

	objectID string
	preset   string
	color    color.RGBA
}

// Showcase 演示程序主体，实现 ebiten.Game 接口
type Showcase struct {
	system          *anim.AnimationSystem
	presetManager   *config.PresetManager
	settingsManager *game.SettingsManager

	sprites []*Sprite
	viewer  anim.Vec3

	whiteImage *ebiten.Image
}

// NewShowcase 初始化演示程序
func NewShowcase(presetDir string, watch bool) (*Showcase, error) {
	// gdata 打开失败不是致命错误，设置管理器进入降级模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: "procanim_showcase"})
	if err != nil {
		log.Printf("[Showcase] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}
	settings := settingsManager.Settings()

	system := anim.NewAnimationSystem()
	system.SetMaxPerObject(settings.MaxPerObject)
	system.SetCullingDistance(settings.CullingDistance)

	presetManager := config.NewPresetManager()
	if watch {
		err = presetManager.Watch(presetDir)
	} else {
		err = presetManager.LoadDir(presetDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load presets from %s: %w", presetDir, err)
	}
	if presetManager.Count() == 0 {
		return nil, fmt.Errorf("no presets found in %s", presetDir)
	}

	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	sc := &Showcase{
		system:          system,
		presetManager:   presetManager,
		settingsManager: settingsManager,
		viewer:          anim.Vec3{X: screenWidth / 2, Y: screenHeight / 2},
		whiteImage:      white,
	}
	sc.buildGrid()
	sc.applyPresets()
	return sc, nil
}

// buildGrid 在网格上摆放方块，循环分配预设
func (sc *Showcase) buildGrid() {
	names := sc.presetManager.Names()
	palette := []color.RGBA{
		{0x66, 0xcc, 0x66, 0xff},
		{0x66, 0x99, 0xee, 0xff},
		{0xee, 0xaa, 0x44, 0xff},
		{0xcc, 0x66, 0xcc, 0xff},
	}

	marginX := (screenWidth - gridColumns*cellWidth) / 2
	marginY := (screenHeight - gridRows*cellHeight) / 2
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridColumns; col++ {
			idx := row*gridColumns + col
			s := &Sprite{
				objectID: fmt.Sprintf("cell_%d_%d", row, col),
				preset:   names[idx%len(names)],
				color:    palette[idx%len(palette)],
			}
			s.Position.X = float64(marginX + col*cellWidth + cellWidth/2)
			s.Position.Y = float64(marginY + row*cellHeight + cellHeight/2)
			s.Scale.X = 1
			s.Scale.Y = 1
			s.Alpha = 1
			sc.sprites = append(sc.sprites, s)
		}
	}
}

// applyPresets 给每个方块套用它的预设
func (sc *Showcase) applyPresets() {
	for _, s := range sc.sprites {
		sc.system.RemoveAllAnimations(s.objectID)
		s.Offset.X, s.Offset.Y = 0, 0
		s.Rotation.Z = 0
		s.Scale.X, s.Scale.Y = 1, 1
		s.Alpha = 1
		if _, err := presets.ApplyByName(sc.system, sc.presetManager, s.objectID, s, s.preset); err != nil {
			log.Printf("[Showcase] 套用预设失败: %v", err)
		}
	}
}

// Update 每帧推进：处理输入并驱动引擎
func (sc *Showcase) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	settings := sc.settingsManager.Settings()

	// 观察者移动
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		sc.viewer.X -= viewerSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		sc.viewer.X += viewerSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		sc.viewer.Y -= viewerSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		sc.viewer.Y += viewerSpeed * dt
	}

	// 统计叠层开关
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		settings.ShowStats = !settings.ShowStats
		sc.saveSettings()
	}

	// 裁剪距离调整
	adjusted := false
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		settings.CullingDistance += 25
		adjusted = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		if settings.CullingDistance > 25 {
			settings.CullingDistance -= 25
		}
		adjusted = true
	}
	if adjusted {
		sc.system.SetCullingDistance(settings.CullingDistance)
		sc.saveSettings()
	}

	// 重新套用预设（配合热重载调试预设文件）
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		sc.applyPresets()
	}

	sc.system.UpdatePlayerPosition(sc.viewer)
	sc.system.Update(dt)
	return nil
}

func (sc *Showcase) saveSettings() {
	if err := sc.settingsManager.Save(); err != nil {
		log.Printf("[Showcase] 保存设置失败: %v", err)
	}
}

// Draw 绘制全部方块、观察者与统计叠层
func (sc *Showcase) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x24, 0x28, 0xff})

	for _, s := range sc.sprites {
		sc.drawSprite(screen, s)
	}

	// 观察者与裁剪范围
	settings := sc.settingsManager.Settings()
	vector.StrokeCircle(screen, float32(sc.viewer.X), float32(sc.viewer.Y),
		float32(settings.CullingDistance), 1, color.RGBA{0xff, 0xff, 0xff, 0x50}, true)
	vector.DrawFilledCircle(screen, float32(sc.viewer.X), float32(sc.viewer.Y),
		5, color.RGBA{0xff, 0x50, 0x50, 0xff}, true)

	if settings.ShowStats {
		stats := sc.system.GetStats()
		info := fmt.Sprintf("animations: %d  active: %d  pooled: %d\nculling distance: %.0f  (Tab/+/-/R)",
			stats.TotalAnimations, stats.ActiveAnimations, stats.PooledAnimations,
			settings.CullingDistance)
		ebitenutil.DebugPrintAt(screen, info, 10, 10)
	}
}

// drawSprite 以缩放+旋转+透明度绘制一个方块，并标注预设名称
func (sc *Showcase) drawSprite(screen *ebiten.Image, s *Sprite) {
	w := spriteSize * s.Scale.X
	h := spriteSize * s.Scale.Y

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(s.Rotation.Z)
	op.GeoM.Translate(s.Position.X+s.Offset.X, s.Position.Y+s.Offset.Y)
	op.ColorScale.ScaleWithColor(s.color)
	alpha := math.Max(0, math.Min(1, s.Alpha))
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(sc.whiteImage, op)

	ebitenutil.DebugPrintAt(screen, s.preset,
		int(s.Position.X-spriteSize/2), int(s.Position.Y+spriteSize/2+6))
}

func (sc *Showcase) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	presetDir := flag.String("presets", "data/presets", "动画预设目录")
	watch := flag.Bool("watch", true, "监听预设目录变化并热重载")
	flag.Parse()

	sc, err := NewShowcase(*presetDir, *watch)
	if err != nil {
		log.Printf("[Showcase] 初始化失败: %v", err)
		os.Exit(1)
	}
	defer sc.presetManager.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("procanim - animation showcase")
	if sc.settingsManager.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(sc); err != nil {
		log.Fatal(err)
	}
}
