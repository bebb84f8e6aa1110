package galaxy

import (
	app_rt "github.com/gekko3d/galaxy/pointrt/rt/app"
)

// PointRtState exposes the window renderer to ECS systems.
type PointRtState struct {
	RtApp  *app_rt.App
	window *WindowState
}

func (s *PointRtState) WindowSize() (int, int) {
	if s == nil || s.RtApp == nil {
		return 0, 0
	}
	return int(s.RtApp.Config.Width), int(s.RtApp.Config.Height)
}

func (s *PointRtState) ProfilerStats() string {
	if s == nil || s.RtApp == nil {
		return ""
	}
	return s.RtApp.Profiler.GetStatsString()
}

func (s *PointRtState) IsDebug() bool {
	if s == nil || s.RtApp == nil {
		return false
	}
	return s.RtApp.DebugMode
}

func (s *PointRtState) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	if s != nil && s.RtApp != nil {
		s.RtApp.DrawText(text, x, y, scale, color)
	}
}

// MeasureText returns the pixel size of text, or zero when text is disabled.
func (s *PointRtState) MeasureText(text string, scale float32) (float32, float32) {
	if s == nil || s.RtApp == nil || s.RtApp.TextRenderer == nil {
		return 0, 0
	}
	return s.RtApp.TextRenderer.MeasureText(text, scale)
}

func (s *PointRtState) GetLineHeight(scale float32) float32 {
	if s == nil || s.RtApp == nil || s.RtApp.TextRenderer == nil {
		return 0
	}
	return s.RtApp.TextRenderer.GetLineHeight(scale)
}
