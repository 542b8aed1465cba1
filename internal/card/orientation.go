package card

// Orientation is the aspect-ratio variant of a rendered asset.
type Orientation int

const (
	// OrientationNone means no displayable asset exists for the face.
	OrientationNone Orientation = iota
	Horizontal
	Vertical
)

// String returns the filename form of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

// Face is the side of the card being displayed.
type Face int

const (
	FaceFront Face = iota
	FaceBack
)

// String returns the display name of the face.
func (f Face) String() string {
	if f == FaceBack {
		return "back"
	}
	return "front"
}

// DeviceClass groups displays by shape: narrow portrait-ish surfaces
// prefer vertical cards, wide ones horizontal.
type DeviceClass int

const (
	DeviceDesktop DeviceClass = iota
	DeviceMobile
)

// DefaultOrientation is the orientation a device class starts with.
func DefaultOrientation(device DeviceClass) Orientation {
	if device == DeviceMobile {
		return Vertical
	}
	return Horizontal
}

// ResolveOrientation picks which asset variant to display for a face.
// The device-preferred orientation wins when its asset exists; otherwise
// whichever orientation is present is used; OrientationNone signals that
// the caller should show an "unavailable" placeholder instead of erroring.
func ResolveOrientation(device DeviceClass, face Face, assets AssetSet) Orientation {
	preferred := DefaultOrientation(device)
	fallback := Horizontal
	if preferred == Horizontal {
		fallback = Vertical
	}

	if assets.URL(face, preferred) != "" {
		return preferred
	}
	if assets.URL(face, fallback) != "" {
		return fallback
	}
	return OrientationNone
}
