package spec

import "fmt"

// ProfileType тип профиля кромки
type ProfileType string

const (
	ProfileC8Chamfer    ProfileType = "c8_chamfer"
	ProfileC5Chamfer    ProfileType = "c5_chamfer"
	ProfileC10Chamfer   ProfileType = "c10_chamfer"
	ProfileFullRound    ProfileType = "full_round"
	ProfileHalfRound    ProfileType = "half_round"
	ProfileQuarterRound ProfileType = "quarter_round"
	ProfileOgee         ProfileType = "ogee"
	ProfileCove         ProfileType = "cove"
	ProfileDoubleCove   ProfileType = "double_cove"
	ProfileOvolo        ProfileType = "ovolo"
	ProfileDupont       ProfileType = "dupont"
	ProfileWaterfall    ProfileType = "waterfall"
	ProfilePencil       ProfileType = "pencil"
	ProfileMiter45      ProfileType = "miter_45"
	ProfileStepped      ProfileType = "stepped"
	ProfileBeveled30    ProfileType = "beveled_30"
	ProfileBeveled60    ProfileType = "beveled_60"
)

// ProfileSegment участок составного профиля (ogee, stepped и т.п.)
type ProfileSegment struct {
	Type   string  `json:"type" yaml:"type"`
	Ratio  float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
}

// ProfileGeometry геометрия профиля кромки и режимы ЧПУ-обработки
type ProfileGeometry struct {
	Type ProfileType `json:"profile_type" yaml:"profile_type"`

	RadiusMM     float64 `json:"radius_mm,omitempty" yaml:"radius_mm,omitempty"`
	DepthMM      float64 `json:"depth_mm,omitempty" yaml:"depth_mm,omitempty"`
	AngleDegrees float64 `json:"angle_degrees,omitempty" yaml:"angle_degrees,omitempty"`

	Segments []ProfileSegment `json:"segments,omitempty" yaml:"segments,omitempty"`

	ToolDiameterMM  float64 `json:"tool_diameter_mm" yaml:"tool_diameter_mm"`
	SpindleSpeedRPM int     `json:"spindle_speed_rpm" yaml:"spindle_speed_rpm"`
	FeedRateMMin    float64 `json:"feed_rate_m_min" yaml:"feed_rate_m_min"`
	StepoverMM      float64 `json:"stepover_mm" yaml:"stepover_mm"`

	ProfileFactor float64 `json:"profile_factor" yaml:"profile_factor"`
	SegmentsCount int     `json:"segments_count" yaml:"segments_count"`
}

var profileDefaults = map[ProfileType]ProfileGeometry{
	ProfileC8Chamfer:    {DepthMM: 8, AngleDegrees: 45, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 20},
	ProfileC5Chamfer:    {DepthMM: 5, AngleDegrees: 45, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 16},
	ProfileC10Chamfer:   {DepthMM: 10, AngleDegrees: 45, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 25},
	ProfileFullRound:    {RadiusMM: 20, ProfileFactor: 0.5, SegmentsCount: 16, ToolDiameterMM: 40},
	ProfileHalfRound:    {RadiusMM: 10, ProfileFactor: 0.5, SegmentsCount: 12, ToolDiameterMM: 20},
	ProfileQuarterRound: {RadiusMM: 6, ProfileFactor: 0.5, SegmentsCount: 8, ToolDiameterMM: 12},
	ProfileOgee: {RadiusMM: 15, ProfileFactor: 0.7, SegmentsCount: 20, ToolDiameterMM: 30,
		Segments: []ProfileSegment{{Type: "concave", Ratio: 0.6}, {Type: "convex", Ratio: 0.4}}},
	ProfileCove: {RadiusMM: 8, ProfileFactor: 1, SegmentsCount: 10, ToolDiameterMM: 16},
	ProfileDoubleCove: {RadiusMM: 12, ProfileFactor: 1, SegmentsCount: 14, ToolDiameterMM: 25,
		Segments: []ProfileSegment{{Type: "cove", Ratio: 0.5}, {Type: "bevel", Ratio: 0.5}}},
	ProfileOvolo: {RadiusMM: 10, DepthMM: 5, ProfileFactor: 0.6, SegmentsCount: 12, ToolDiameterMM: 20},
	ProfileDupont: {RadiusMM: 18, ProfileFactor: 0.8, SegmentsCount: 24, ToolDiameterMM: 35,
		Segments: []ProfileSegment{{Type: "step", Height: 2}, {Type: "ogee", Ratio: 0.8}}},
	ProfileWaterfall: {RadiusMM: 25, DepthMM: 15, ProfileFactor: 0.4, SegmentsCount: 32, ToolDiameterMM: 50, FeedRateMMin: 1.5},
	ProfilePencil:    {RadiusMM: 3, ProfileFactor: 0.5, SegmentsCount: 6, ToolDiameterMM: 6, SpindleSpeedRPM: 18000},
	ProfileMiter45:   {DepthMM: 20, AngleDegrees: 45, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 12},
	ProfileStepped: {DepthMM: 10, ProfileFactor: 0, SegmentsCount: 3, ToolDiameterMM: 20,
		Segments: []ProfileSegment{{Type: "step", Height: 3}, {Type: "land", Width: 4}, {Type: "step", Height: 3}}},
	ProfileBeveled30: {DepthMM: 8, AngleDegrees: 30, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 16},
	ProfileBeveled60: {DepthMM: 12, AngleDegrees: 60, ProfileFactor: 0, SegmentsCount: 1, ToolDiameterMM: 20},
}

// ProfileTypes возвращает все известные типы профилей
func ProfileTypes() []ProfileType {
	return []ProfileType{
		ProfileC8Chamfer, ProfileC5Chamfer, ProfileC10Chamfer,
		ProfileFullRound, ProfileHalfRound, ProfileQuarterRound,
		ProfileOgee, ProfileCove, ProfileDoubleCove, ProfileOvolo, ProfileDupont,
		ProfileWaterfall, ProfilePencil, ProfileMiter45, ProfileStepped,
		ProfileBeveled30, ProfileBeveled60,
	}
}

// NewProfileGeometry создает профиль; нулевые поля overrides заполняются значениями по умолчанию для типа
func NewProfileGeometry(profileType ProfileType, overrides ProfileGeometry) (ProfileGeometry, error) {
	defaults, ok := profileDefaults[profileType]
	if !ok {
		return ProfileGeometry{}, fmt.Errorf("unknown profile type %q", profileType)
	}

	p := overrides
	p.Type = profileType
	if p.RadiusMM == 0 {
		p.RadiusMM = defaults.RadiusMM
	}
	if p.DepthMM == 0 {
		p.DepthMM = defaults.DepthMM
	}
	if p.AngleDegrees == 0 {
		p.AngleDegrees = defaults.AngleDegrees
	}
	if len(p.Segments) == 0 && len(defaults.Segments) > 0 {
		p.Segments = append([]ProfileSegment(nil), defaults.Segments...)
	}
	if p.ToolDiameterMM == 0 {
		p.ToolDiameterMM = defaults.ToolDiameterMM
	}
	if p.SpindleSpeedRPM == 0 {
		p.SpindleSpeedRPM = defaults.SpindleSpeedRPM
	}
	if p.SpindleSpeedRPM == 0 {
		p.SpindleSpeedRPM = 12000
	}
	if p.FeedRateMMin == 0 {
		p.FeedRateMMin = defaults.FeedRateMMin
	}
	if p.FeedRateMMin == 0 {
		p.FeedRateMMin = 2.0
	}
	if p.StepoverMM == 0 {
		p.StepoverMM = 0.5
	}
	if p.ProfileFactor == 0 {
		p.ProfileFactor = defaults.ProfileFactor
	}
	if p.SegmentsCount == 0 {
		p.SegmentsCount = defaults.SegmentsCount
	}

	if err := nonNegative(
		field{"radius_mm", p.RadiusMM},
		field{"depth_mm", p.DepthMM},
		field{"angle_degrees", p.AngleDegrees},
		field{"tool_diameter_mm", p.ToolDiameterMM},
	); err != nil {
		return ProfileGeometry{}, fmt.Errorf("profile %s: %w", profileType, err)
	}
	return p, nil
}

// IsChamfer сообщает, является ли профиль прямой фаской
func (p ProfileGeometry) IsChamfer() bool {
	switch p.Type {
	case ProfileC5Chamfer, ProfileC8Chamfer, ProfileC10Chamfer, ProfileMiter45, ProfileBeveled30, ProfileBeveled60:
		return true
	}
	return false
}
