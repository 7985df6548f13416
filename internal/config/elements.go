package config

// Element selectors. Each names a piece of photo metadata that a watermark
// quadrant can display.
const (
	ModelValue             = "Model"
	MakeValue              = "Make"
	LensValue              = "LensModel"
	ParamValue             = "Param"
	DatetimeValue          = "Datetime"
	DateValue              = "Date"
	CustomValue            = "Custom"
	NoneValue              = "None"
	LensMakeLensModelValue = "LensMake_LensModel"
	CameraModelLensValue   = "CameraModel_LensModel"
	CameraMakeModelValue   = "CameraMake_CameraModel"
	TotalPixelValue        = "TotalPixel"
	FilenameValue          = "Filename"
	DateFilenameValue      = "Date_Filename"
	DatetimeFilenameValue  = "Datetime_Filename"
)

// Selectors lists every recognised element name.
var Selectors = []string{
	ModelValue,
	MakeValue,
	LensValue,
	ParamValue,
	DatetimeValue,
	DateValue,
	CustomValue,
	NoneValue,
	LensMakeLensModelValue,
	CameraModelLensValue,
	CameraMakeModelValue,
	TotalPixelValue,
	FilenameValue,
	DateFilenameValue,
	DatetimeFilenameValue,
}
