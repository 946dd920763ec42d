package component

import (
	"github.com/farixgo/engine/internal/asset"
	"github.com/go-gl/mathgl/mgl32"
)

// Anchor pins a UI rect to a screen edge or corner.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
	AnchorTopCenter
	AnchorBottomCenter
	AnchorLeftCenter
	AnchorRightCenter
)

// Offset returns the screen-space origin of the anchor.
func (a Anchor) Offset(w, h float32) mgl32.Vec3 {
	switch a {
	case AnchorTopCenter:
		return mgl32.Vec3{w / 2, 0, 0}
	case AnchorTopRight:
		return mgl32.Vec3{w, 0, 0}
	case AnchorLeftCenter:
		return mgl32.Vec3{0, h / 2, 0}
	case AnchorCenter:
		return mgl32.Vec3{w / 2, h / 2, 0}
	case AnchorRightCenter:
		return mgl32.Vec3{w, h / 2, 0}
	case AnchorBottomLeft:
		return mgl32.Vec3{0, h, 0}
	case AnchorBottomCenter:
		return mgl32.Vec3{w / 2, h, 0}
	case AnchorBottomRight:
		return mgl32.Vec3{w, h, 0}
	default:
		return mgl32.Vec3{}
	}
}

// UI marks an entity as screen-space. It needs a Rect to be drawn.
type UI struct {
	Anchor       Anchor `json:"anchor"`
	Visible      bool   `json:"visible"`
	Interactable bool   `json:"interactable"`
	BlockRaycast bool   `json:"blockRaycast"`
}

func NewUI() UI { return UI{Visible: true, BlockRaycast: true} }

// Rect is a screen-space box in pixels, y down, relative to the anchor.
type Rect struct {
	Position mgl32.Vec3 `json:"position"`
	Size     mgl32.Vec3 `json:"size"`
	Rotation float32    `json:"rotation"`
}

func NewRect() Rect { return Rect{Size: mgl32.Vec3{100, 50, 0}} }

// UIImage fills its rect with a color or texture.
type UIImage struct {
	TextureUUID string         `json:"texture,omitempty"`
	Texture     *asset.Texture `json:"-"`
	Color       mgl32.Vec4     `json:"color"`
	UseTexture  bool           `json:"useTexture"`
}

func NewUIImage() UIImage { return UIImage{Color: mgl32.Vec4{1, 1, 1, 1}} }

// UIText draws a string at its rect's anchored position.
type UIText struct {
	Text     string      `json:"text"`
	Color    mgl32.Vec4  `json:"color"`
	FontSize float32     `json:"fontSize"`
	FontUUID string      `json:"font,omitempty"`
	Font     *asset.Font `json:"-"`
}

func NewUIText(text string) UIText {
	return UIText{Text: text, Color: mgl32.Vec4{1, 1, 1, 1}, FontSize: 16}
}
