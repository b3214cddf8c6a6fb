package battleground

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GID flag bits (same convention as Tiled TMX format).
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

// maxTilesPerDraw is the maximum number of tiles per DrawTriangles call.
// Limited by uint16 index buffer: 65535 / 4 vertices per tile = 16383.
const maxTilesPerDraw = 16383

// uvOrder defines vertex UV assignment for each combination of flip flags.
// Indexed by 3-bit flag value: (flipH << 2) | (flipV << 1) | flipD.
// Each entry contains 4 corner indices: TL=0, TR=1, BL=2, BR=3.
var uvOrder = [8][4]int{
	{0, 1, 2, 3}, // no flags
	{2, 0, 3, 1}, // D only (90° CW + H flip)
	{2, 3, 0, 1}, // V flip
	{3, 2, 1, 0}, // V+D (90° CCW)
	{1, 0, 3, 2}, // H flip
	{0, 2, 1, 3}, // H+D (90° CW)
	{3, 2, 1, 0}, // H+V
	{1, 3, 0, 2}, // H+V+D (90° CW + V flip)
}

// ErrNoTileset is returned by TileMap.Render before a tileset is set.
var ErrNoTileset = errors.New("battleground: tile map has no tileset")

// TileMap is a single-layer grid of tile GIDs drawn from one tileset image.
// GID 0 is empty; GID n is the n-th tile of the tileset in row-major order.
type TileMap struct {
	TileWidth  int
	TileHeight int

	cols, rows int
	data       []uint32

	tileset     *ebiten.Image
	tilesetName string
	regions     []image.Rectangle // indexed by GID

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewTileMap creates a cols x rows map. data is row-major and must hold
// exactly cols*rows GIDs; it is retained, not copied.
func NewTileMap(cols, rows, tileWidth, tileHeight int, data []uint32) (*TileMap, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("new tile map: invalid size %dx%d", cols, rows)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("new tile map: invalid tile size %dx%d", tileWidth, tileHeight)
	}
	if len(data) != cols*rows {
		return nil, fmt.Errorf("new tile map: got %d tiles, want %d", len(data), cols*rows)
	}
	return &TileMap{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		cols:       cols,
		rows:       rows,
		data:       data,
	}, nil
}

// UseTileset names a tileset resource to be loaded by Load.
func (m *TileMap) UseTileset(name string) {
	m.tilesetName = name
}

// Load implements Loader. It loads the tileset named by UseTileset, if any.
func (m *TileMap) Load(res *Resources) error {
	if m.tilesetName == "" {
		return nil
	}
	img, err := res.Image(m.tilesetName)
	if err != nil {
		return err
	}
	m.SetTileset(img)
	return nil
}

// SetTileset slices img into tiles of the map's tile size.
func (m *TileMap) SetTileset(img *ebiten.Image) {
	m.tileset = img
	m.regions = sliceTileset(img.Bounds(), m.TileWidth, m.TileHeight)
}

// sliceTileset returns tile rectangles indexed by GID; index 0 is unused.
func sliceTileset(b image.Rectangle, tw, th int) []image.Rectangle {
	perRow := b.Dx() / tw
	perCol := b.Dy() / th
	regions := make([]image.Rectangle, 1, perRow*perCol+1)
	for r := 0; r < perCol; r++ {
		for c := 0; c < perRow; c++ {
			x := b.Min.X + c*tw
			y := b.Min.Y + r*th
			regions = append(regions, image.Rect(x, y, x+tw, y+th))
		}
	}
	return regions
}

// Size returns the map size in tiles.
func (m *TileMap) Size() (cols, rows int) {
	return m.cols, m.rows
}

// WorldBounds returns the map extent in world units.
func (m *TileMap) WorldBounds() Rect {
	return Rect{Width: float64(m.cols * m.TileWidth), Height: float64(m.rows * m.TileHeight)}
}

// Tile returns the GID at (col, row), or 0 outside the map.
func (m *TileMap) Tile(col, row int) uint32 {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return 0
	}
	return m.data[row*m.cols+col]
}

// SetTile replaces the GID at (col, row). Out-of-range writes are ignored.
func (m *TileMap) SetTile(col, row int, gid uint32) {
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return
	}
	m.data[row*m.cols+col] = gid
}

// visibleRange returns the half-open tile range [c0,c1) x [r0,r1)
// intersecting bounds, clamped to the map.
func (m *TileMap) visibleRange(bounds Rect) (c0, r0, c1, r1 int) {
	tw := float64(m.TileWidth)
	th := float64(m.TileHeight)
	c0 = min(max(int(math.Floor(bounds.X/tw)), 0), m.cols)
	r0 = min(max(int(math.Floor(bounds.Y/th)), 0), m.rows)
	c1 = min(int(math.Ceil((bounds.X+bounds.Width)/tw)), m.cols)
	r1 = min(int(math.Ceil((bounds.Y+bounds.Height)/th)), m.rows)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return c0, r0, c1, r1
}

// Render implements MapRenderer. Only tiles intersecting the camera's
// visible bounds are submitted.
func (m *TileMap) Render(target *ebiten.Image, cam CameraView) error {
	if target == nil {
		return ErrNoRenderTarget
	}
	if m.tileset == nil {
		return ErrNoTileset
	}
	view := cam.ViewMatrix()
	c0, r0, c1, r1 := m.visibleRange(cam.VisibleBounds())

	m.vertices = m.vertices[:0]
	count := 0
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			gid := m.data[row*m.cols+col]
			base := gid &^ tileFlagMask
			if base == 0 || int(base) >= len(m.regions) {
				continue
			}
			m.appendTile(view, col, row, gid)
			count++
			if count == maxTilesPerDraw {
				m.flush(target, count)
				count = 0
			}
		}
	}
	if count > 0 {
		m.flush(target, count)
	}
	return nil
}

// appendTile appends the four screen-space vertices of one tile.
func (m *TileMap) appendTile(view [6]float64, col, row int, gid uint32) {
	region := m.regions[gid&^tileFlagMask]
	x0 := float64(col * m.TileWidth)
	y0 := float64(row * m.TileHeight)
	x1 := x0 + float64(m.TileWidth)
	y1 := y0 + float64(m.TileHeight)

	// Source UV corners: TL, TR, BL, BR.
	uv := [4][2]float32{
		{float32(region.Min.X), float32(region.Min.Y)},
		{float32(region.Max.X), float32(region.Min.Y)},
		{float32(region.Min.X), float32(region.Max.Y)},
		{float32(region.Max.X), float32(region.Max.Y)},
	}
	var flags int
	if gid&tileFlipH != 0 {
		flags |= 4
	}
	if gid&tileFlipV != 0 {
		flags |= 2
	}
	if gid&tileFlipD != 0 {
		flags |= 1
	}
	order := uvOrder[flags]

	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}
	for i, c := range corners {
		sx, sy := transformPoint(view, c[0], c[1])
		src := uv[order[i]]
		m.vertices = append(m.vertices, ebiten.Vertex{
			DstX: float32(sx), DstY: float32(sy),
			SrcX: src[0], SrcY: src[1],
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
}

// flush submits the last count tiles in the vertex buffer.
func (m *TileMap) flush(target *ebiten.Image, count int) {
	m.ensureIndices(count)
	verts := m.vertices[len(m.vertices)-count*4:]
	target.DrawTriangles(verts, m.indices[:count*6], m.tileset, nil)
	m.vertices = m.vertices[:0]
}

// ensureIndices grows the shared index buffer; its topology never changes.
func (m *TileMap) ensureIndices(tiles int) {
	if tiles*6 <= len(m.indices) {
		return
	}
	m.indices = make([]uint16, tiles*6)
	for i := 0; i < tiles; i++ {
		base := uint16(i * 4)
		off := i * 6
		m.indices[off+0] = base + 0
		m.indices[off+1] = base + 1
		m.indices[off+2] = base + 2
		m.indices[off+3] = base + 1
		m.indices[off+4] = base + 3
		m.indices[off+5] = base + 2
	}
}

// SolidTileset builds a one-row tileset with a flat colored tile per entry
// in colors, so GID i+1 renders colors[i].
func SolidTileset(tileSize int, colors []color.Color) *ebiten.Image {
	img := ebiten.NewImage(tileSize*max(len(colors), 1), tileSize)
	for i, c := range colors {
		r := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		img.SubImage(r).(*ebiten.Image).Fill(c)
	}
	return img
}

// TerrainFromNoise assigns each tile of a cols x rows map one of levels GIDs
// (1..levels) by bucketing n sampled at the tile centre.
func TerrainFromNoise(cols, rows, levels int, n *ValueNoise) []uint32 {
	if levels < 1 {
		levels = 1
	}
	data := make([]uint32, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := n.Sample(float64(col)+0.5, float64(row)+0.5)
			level := min(int(v*float64(levels)), levels-1)
			data[row*cols+col] = uint32(level) + 1
		}
	}
	return data
}
