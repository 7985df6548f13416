package processor

// Stage and layout identifiers.
const (
	EmptyID                         = "empty"
	ShadowID                        = "shadow"
	SquareID                        = "square"
	WatermarkID                     = "watermark"
	WatermarkLeftLogoID             = "watermark_left_logo"
	WatermarkRightLogoID            = "watermark_right_logo"
	DarkWatermarkLeftLogoID         = "dark_watermark_left_logo"
	DarkWatermarkRightLogoID        = "dark_watermark_right_logo"
	CustomWatermarkID               = "custom_watermark"
	MarginID                        = "margin"
	SimpleID                        = "simple"
	PaddingToOriginalRatioID        = "padding_to_original_ratio"
	BackgroundBlurID                = "background_blur"
	BackgroundBlurWithWhiteBorderID = "background_blur_with_white_border"
	BackgroundBlurWithParamsID      = "background_blur_with_params"
	PureWhiteMarginID               = "pure_white_margin"
)

// IsWatermarkFamily reports whether id names one of the band layouts.
func IsWatermarkFamily(id string) bool {
	switch id {
	case WatermarkID, WatermarkLeftLogoID, WatermarkRightLogoID,
		DarkWatermarkLeftLogoID, DarkWatermarkRightLogoID, CustomWatermarkID:
		return true
	}
	return false
}
