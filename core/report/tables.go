package report

// exposurePrograms names the EXIF ExposureProgram (0x8822) codes.
var exposurePrograms = map[int64]string{
	0: "Not Defined",
	1: "Manual",
	2: "Program AE",
	3: "Aperture Priority",
	4: "Shutter Priority",
	5: "Creative",
	6: "Action",
	7: "Portrait",
	8: "Landscape",
	9: "Bulb",
}

// cropKeys are the Camera Raw crop edges, as fractions of the image size.
// Right and bottom are measured from the left and top edges.
var cropKeys = []string{"CropLeft", "CropRight", "CropTop", "CropBottom"}

// postProcessingKeys are the Camera Raw (crs) develop settings shown in the
// post-processing section, in output order. Process 2012 names appear next
// to their older spellings; Humanize gives both the same label.
var postProcessingKeys = []string{
	// Basic
	"Exposure",
	"Exposure2012",
	"Contrast",
	"Contrast2012",
	"Highlights",
	"Highlights2012",
	"Shadows",
	"Shadows2012",
	"Whites",
	"Whites2012",
	"Blacks",
	"Blacks2012",
	"Texture",
	"Clarity",
	"Clarity2012",
	"Dehaze",
	"Vibrance",
	"Saturation",

	// Tone curve
	"ParametricShadows",
	"ParametricDarks",
	"ParametricLights",
	"ParametricHighlights",
	"ParametricShadowSplit",
	"ParametricMidtoneSplit",
	"ParametricHighlightSplit",
	"ToneCurveName",
	"ToneCurveName2012",

	// Detail
	"Sharpness",
	"SharpenRadius",
	"SharpenDetail",
	"SharpenEdgeMasking",
	"LuminanceSmoothing",
	"ColorNoiseReduction",
	"ColorNoiseReductionDetail",
	"ColorNoiseReductionSmoothness",

	// Color grading
	"SplitToningShadowHue",
	"SplitToningShadowSaturation",
	"SplitToningHighlightHue",
	"SplitToningHighlightSaturation",
	"SplitToningBalance",
	"ColorGradeMidtoneHue",
	"ColorGradeMidtoneSat",
	"ColorGradeShadowLum",
	"ColorGradeMidtoneLum",
	"ColorGradeHighlightLum",
	"ColorGradeBlending",
	"ColorGradeGlobalHue",
	"ColorGradeGlobalSat",
	"ColorGradeGlobalLum",

	// Optics
	"DefringePurpleAmount",
	"DefringePurpleHueLo",
	"DefringePurpleHueHi",
	"DefringeGreenAmount",
	"DefringeGreenHueLo",
	"DefringeGreenHueHi",
	"VignetteAmount",

	// Transform
	"PerspectiveVertical",
	"PerspectiveHorizontal",
	"PerspectiveRotate",
	"PerspectiveAspect",
	"PerspectiveScale",
	"PerspectiveX",
	"PerspectiveY",

	// Effects
	"PostCropVignetteAmount",
	"GrainAmount",
}

// unsetValues are non-numeric settings that mean "not applied".
var unsetValues = map[string]bool{
	"0":     true,
	"false": true,
	"none":  true,
	"":      true,
}
