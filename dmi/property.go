package dmi

type property int

const (
	propertyDelay property = iota + 1
	propertyDirs
	propertyFrames
	propertyHotspot
	propertyLoop
	propertyMovement
	propertyRewind
)

var properties = map[string]property{
	"delay":    propertyDelay,
	"dirs":     propertyDirs,
	"frames":   propertyFrames,
	"hotspot":  propertyHotspot,
	"loop":     propertyLoop,
	"movement": propertyMovement,
	"rewind":   propertyRewind,
}
