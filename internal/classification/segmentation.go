package classification

// Segmentation is the severity result produced by the external segmentation
// service. Only Severity.Score and Category.Label feed priority arbitration;
// the rest is carried for prompt context.
type Segmentation struct {
	Severity Severity          `json:"severity"`
	Category SeverityCategory  `json:"category"`
	Stats    SegmentationStats `json:"stats"`
}

type Severity struct {
	Score float64 `json:"severity_score"`
	Surf  float64 `json:"Ssurf"`
	Dens  float64 `json:"Sdens"`
	Grav  float64 `json:"Sgrav"`
	Disp  float64 `json:"Sdisp"`
}

type SeverityCategory struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type SegmentationStats struct {
	CropSize  float64 `json:"crop_size"`
	VegPixels float64 `json:"veg_pixels"`
	VegRatio  float64 `json:"veg_ratio"`
}

// SeverityScore returns a pointer to the severity score, or nil when no
// segmentation result is present.
func (s *Segmentation) SeverityScore() *float64 {
	if s == nil {
		return nil
	}
	v := s.Severity.Score
	return &v
}
