package browse

type CloseReason int

const (
	CloseButton CloseReason = iota
	CloseBackdrop
	CloseEscape
)

// ImageViewer is the full-screen document viewer. Page scroll is locked while it is open.
type ImageViewer struct {
	open bool
	src  string
	alt  string
}

func (v *ImageViewer) Open(src, alt string) {
	v.open = true
	v.src = src
	v.alt = alt
}

func (v *ImageViewer) Close(CloseReason) {
	v.open = false
	v.src = ""
	v.alt = ""
}

// Backdrop handles a click on the dimmed area around the image.
func (v *ImageViewer) Backdrop() {
	v.Close(CloseBackdrop)
}

// HandleKey closes the viewer on Escape and reports whether the key was consumed.
func (v *ImageViewer) HandleKey(key string) bool {
	if !v.open || key != "Escape" {
		return false
	}
	v.Close(CloseEscape)
	return true
}

func (v *ImageViewer) IsOpen() bool { return v.open }

func (v *ImageViewer) ScrollLocked() bool { return v.open }

func (v *ImageViewer) Src() string { return v.src }

func (v *ImageViewer) Alt() string { return v.alt }
