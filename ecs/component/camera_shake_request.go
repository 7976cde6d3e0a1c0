package component

import "time"

// CameraShakeRequest asks the camera to shake. Intensity is a fraction of
// the view size, matching how the renderer scales the offset.
type CameraShakeRequest struct {
	Duration  time.Duration
	Intensity float64
	Remaining time.Duration
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]("camera_shake")
