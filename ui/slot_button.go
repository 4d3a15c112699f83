package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const slotInset = 5

// SlotButton is a round grid button with the slot's label underneath
type SlotButton struct {
	widget.BaseWidget
	pos      int
	size     float32
	label    string
	assigned bool
	disabled bool

	OnTapped          func(pos int)
	OnTappedSecondary func(pos int)
}

var (
	_ fyne.Tappable          = (*SlotButton)(nil)
	_ fyne.SecondaryTappable = (*SlotButton)(nil)
)

// NewSlotButton creates the button for grid position pos, size pixels across
func NewSlotButton(pos int, size float32) *SlotButton {
	sb := &SlotButton{
		pos:      pos,
		size:     size,
		disabled: true,
	}
	sb.ExtendBaseWidget(sb)
	return sb
}

// SetSlot updates the label and whether a sound is assigned
func (sb *SlotButton) SetSlot(label string, assigned bool) {
	sb.label = label
	sb.assigned = assigned
	sb.Refresh()
}

// SetEnabled dims the button while no board is active
func (sb *SlotButton) SetEnabled(enabled bool) {
	sb.disabled = !enabled
	sb.Refresh()
}

// Tapped implements fyne.Tappable
func (sb *SlotButton) Tapped(*fyne.PointEvent) {
	if sb.OnTapped != nil {
		sb.OnTapped(sb.pos)
	}
}

// TappedSecondary implements fyne.SecondaryTappable
func (sb *SlotButton) TappedSecondary(*fyne.PointEvent) {
	if sb.OnTappedSecondary != nil {
		sb.OnTappedSecondary(sb.pos)
	}
}

// CreateRenderer implements fyne.Widget
func (sb *SlotButton) CreateRenderer() fyne.WidgetRenderer {
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeWidth = 2

	text := canvas.NewText(sb.label, color.Transparent)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = theme.CaptionTextSize()

	r := &slotButtonRenderer{button: sb, circle: circle, text: text}
	r.Refresh()
	return r
}

// slotButtonRenderer implements fyne.WidgetRenderer
type slotButtonRenderer struct {
	button *SlotButton
	circle *canvas.Circle
	text   *canvas.Text
}

func (r *slotButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	width := r.button.size
	if textSize.Width > width {
		width = textSize.Width
	}
	return fyne.NewSize(width, r.button.size+theme.Padding()+textSize.Height)
}

func (r *slotButtonRenderer) Layout(size fyne.Size) {
	diameter := r.button.size - 2*slotInset
	left := (size.Width - r.button.size) / 2
	r.circle.Move(fyne.NewPos(left+slotInset, slotInset))
	r.circle.Resize(fyne.NewSize(diameter, diameter))

	textHeight := r.text.MinSize().Height
	r.text.Move(fyne.NewPos(0, r.button.size+theme.Padding()))
	r.text.Resize(fyne.NewSize(size.Width, textHeight))
}

func (r *slotButtonRenderer) Refresh() {
	fill := slotColor(colorNameSlotInactive)
	if r.button.assigned {
		fill = slotColor(colorNameSlotActive)
	}
	textColor := theme.ForegroundColor()
	if r.button.disabled {
		textColor = theme.DisabledColor()
	}

	r.circle.FillColor = fill
	r.circle.StrokeColor = theme.ForegroundColor()
	r.text.Text = r.button.label
	r.text.Color = textColor

	r.circle.Refresh()
	r.text.Refresh()
}

func (r *slotButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.circle, r.text}
}

func (r *slotButtonRenderer) Destroy() {
	// Nothing to destroy
}

// slotColor resolves one of the slot colour roles from the current theme
func slotColor(name fyne.ThemeColorName) color.Color {
	settings := fyne.CurrentApp().Settings()
	return settings.Theme().Color(name, settings.ThemeVariant())
}
