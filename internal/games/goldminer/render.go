package goldminer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/goldminer/internal/core"
)

// Minimum terminal size the scene is readable at.
const (
	MinCols = 40
	MinRows = 14
)

// hudRows is the number of text rows above the play field.
const hudRows = 2

// Visual characters for rendering
const (
	PivotChar  = '@'
	HookChar   = '∪'
	AimChar    = '·'
	GroundChar = '▀'
	DirtChar   = '.'
)

// ItemGlyph returns the glyph and color an item type is drawn with.
func ItemGlyph(t ItemType) (rune, core.Color) {
	switch t {
	case SmallGold:
		return '•', core.ColorYellow
	case MediumGold:
		return 'o', core.ColorYellow
	case LargeGold:
		return 'O', core.ColorBrightYellow
	case Diamond:
		return '◆', core.ColorBrightCyan
	case Stone:
		return '■', core.ColorGray
	case Bag:
		return '$', core.ColorMagenta
	default:
		return '?', core.ColorDefault
	}
}

// viewport maps world units onto the cells below the HUD.
type viewport struct {
	geo        Geometry
	cols, rows int // Play field size in cells
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(p.X / v.geo.Width * float64(v.cols))
	y := int(p.Y / v.geo.Height * float64(v.rows))
	return core.Clamp(x, 0, v.cols-1), hudRows + core.Clamp(y, 0, v.rows-1)
}

// Render draws a snapshot onto dst. It never touches engine state.
func Render(dst *core.Screen, st State, geo Geometry) {
	dst.Clear()

	if dst.Width() < MinCols || dst.Height() < MinRows {
		renderTooSmall(dst)
		return
	}

	vp := viewport{geo: geo, cols: dst.Width(), rows: dst.Height() - hudRows}

	renderBackground(dst, vp)
	for _, item := range st.Items {
		if !item.Caught {
			renderItem(dst, vp, item)
		}
	}
	renderHook(dst, vp, &st)
	renderHUD(dst, &st)
	renderOverlay(dst, &st)
}

func renderTooSmall(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Window too small")
	dst.DrawTextCentered(mid, fmt.Sprintf("need %dx%d", MinCols, MinRows))
}

// renderBackground draws the ground strip and a dirt texture that darkens with depth.
func renderBackground(dst *core.Screen, vp viewport) {
	_, groundY := vp.cell(core.Vec2{Y: vp.geo.GroundY})
	dst.DrawHLine(0, groundY, vp.cols, GroundChar, core.ColorGreen)

	bottom := hudRows + vp.rows
	depth := bottom - groundY - 1
	if depth <= 0 {
		return
	}
	for y := groundY + 1; y < bottom; y++ {
		color := dirtColor(float64(y-groundY) / float64(depth))
		for x := 0; x < vp.cols; x++ {
			if (x*7+y*13)%11 == 0 {
				dst.SetColored(x, y, DirtChar, color)
			}
		}
	}
}

func dirtColor(depth float64) core.Color {
	switch {
	case depth < 0.33:
		return core.ColorOrange
	case depth < 0.66:
		return core.ColorBrown
	default:
		return core.ColorGray
	}
}

// renderItem fills the ellipse an item's size covers on the cell grid.
func renderItem(dst *core.Screen, vp viewport, item Item) {
	glyph, color := ItemGlyph(item.Type)
	cx, cy := vp.cell(core.Vec2{X: item.X, Y: item.Y})

	rx := item.Size / vp.geo.Width * float64(vp.cols)
	ry := item.Size / vp.geo.Height * float64(vp.rows)
	hx, hy := int(rx), int(ry)

	for dy := -hy; dy <= hy; dy++ {
		for dx := -hx; dx <= hx; dx++ {
			nx := float64(dx) / (rx + 0.5)
			ny := float64(dy) / (ry + 0.5)
			if nx*nx+ny*ny <= 1 {
				dst.SetColored(cx+dx, cy+dy, glyph, color)
			}
		}
	}
}

// armChar picks a line glyph that follows the arm direction.
func armChar(angle float64) rune {
	switch {
	case angle < math.Pi/8 || angle > 7*math.Pi/8:
		return '─'
	case angle < 3*math.Pi/8:
		return '\\'
	case angle <= 5*math.Pi/8:
		return '│'
	default:
		return '/'
	}
}

func renderHook(dst *core.Screen, vp viewport, st *State) {
	px, py := vp.cell(vp.geo.Pivot)

	if st.Idle() {
		aim := core.Polar(vp.geo.Pivot, st.HookAngle, vp.geo.MaxHookLength)
		ax, ay := vp.cell(aim)
		dst.DrawLine(px, py, ax, ay, AimChar, core.ColorGray, 2)
	}

	tip := st.Tip(vp.geo.Pivot)
	tx, ty := vp.cell(tip)
	if st.HookLength > 0 {
		dst.DrawLine(px, py, tx, ty, armChar(st.HookAngle), core.ColorWhite, 0)
	}

	if st.CaughtItem != nil {
		glyph, color := ItemGlyph(st.CaughtItem.Type)
		dst.SetColored(tx, ty, glyph, color)
	} else {
		dst.SetColored(tx, ty, HookChar, core.ColorBrightWhite)
	}
	dst.SetColored(px, py, PivotChar, core.ColorBrightYellow)
}

// angleDial renders the hook angle as a marker on a right-to-left scale.
func angleDial(angle float64) string {
	const width = 11
	pos := int(math.Round((1 - angle/math.Pi) * (width - 1)))
	pos = core.Clamp(pos, 0, width-1)

	var b strings.Builder
	b.WriteRune('◟')
	for i := range width {
		if i == pos {
			b.WriteRune('●')
		} else {
			b.WriteRune('─')
		}
	}
	b.WriteRune('◞')
	fmt.Fprintf(&b, " %3d°", int(math.Round(angle*180/math.Pi)))
	return b.String()
}

func renderHUD(dst *core.Screen, st *State) {
	left := fmt.Sprintf("Lv %d  Score %d/%d  Coins %d", st.Level, st.Score, st.TargetScore, st.Coins)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	timeColor := core.ColorBrightGreen
	if st.TimeLeft < 10 {
		timeColor = core.ColorBrightRed
	}
	timeText := fmt.Sprintf("Time %2ds", int(math.Ceil(st.TimeLeft)))
	dst.DrawTextColored(len([]rune(left))+2, 0, timeText, timeColor)

	dial := angleDial(st.HookAngle)
	dst.DrawTextColored(dst.Width()-len([]rune(dial)), 0, dial, core.ColorCyan)

	x := 0
	for i, info := range catalog {
		text := fmt.Sprintf("%d%c×%d ", i+1, info.Icon, st.PowerUps[i])
		color := core.ColorGray
		if st.PowerUps[i] > 0 {
			color = core.ColorWhite
		}
		dst.DrawTextColored(x, 1, text, color)
		x += len([]rune(text))
	}

	var active []string
	if st.Active.Has(PowerUpMagnet) {
		active = append(active, fmt.Sprintf("magnet %ds", int(st.Remaining(PowerUpMagnet).Seconds())))
	}
	if st.Active.Has(PowerUpSpeedBoost) {
		active = append(active, fmt.Sprintf("boost %ds", int(st.Remaining(PowerUpSpeedBoost).Seconds())))
	}
	if st.Active.Has(PowerUpDoubleCoins) {
		active = append(active, "2x coins")
	}
	if len(active) > 0 {
		dst.DrawTextColored(x+1, 1, strings.Join(active, " "), core.ColorBrightMagenta)
	}
}

// renderOverlay draws the modal box for ended levels and pause.
func renderOverlay(dst *core.Screen, st *State) {
	var lines []string
	switch {
	case st.Status == StatusLevelComplete:
		lines = []string{
			fmt.Sprintf("LEVEL %d COMPLETE", st.Level),
			fmt.Sprintf("Score %d", st.Score),
			"Press SPACE to continue",
		}
	case st.Status == StatusLevelFailed:
		lines = []string{
			fmt.Sprintf("LEVEL %d FAILED", st.Level),
			fmt.Sprintf("Score %d of %d", st.Score, st.TargetScore),
			"Press SPACE to retry",
		}
	case st.Status == StatusGameOver:
		lines = []string{
			"GAME OVER",
			fmt.Sprintf("Final score %d on level %d", st.Score, st.Level),
		}
	case st.Paused:
		lines = []string{"PAUSED", "Press P to resume"}
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((dst.Width()-w-4)/2, (dst.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l)
	}
}
