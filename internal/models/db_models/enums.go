package db_models

type JourneyStatus string

const (
	JourneyOnboarding    JourneyStatus = "ONBOARDING"
	JourneyBrandBuilding JourneyStatus = "BRAND_BUILDING"
	JourneyLaunch        JourneyStatus = "LAUNCH"
	JourneyLive          JourneyStatus = "LIVE"
	JourneyPaused        JourneyStatus = "PAUSED"
	JourneyClosed        JourneyStatus = "CLOSED"
)

// JourneyStatuses is the canonical lifecycle order.
var JourneyStatuses = []JourneyStatus{
	JourneyOnboarding,
	JourneyBrandBuilding,
	JourneyLaunch,
	JourneyLive,
	JourneyPaused,
	JourneyClosed,
}

func (s JourneyStatus) Valid() bool {
	for _, v := range JourneyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Early stages are held to the tighter staleness thresholds.
func (s JourneyStatus) IsEarlyStage() bool {
	return s == JourneyOnboarding || s == JourneyBrandBuilding
}

func (s JourneyStatus) Display() string {
	switch s {
	case JourneyOnboarding:
		return "Onboarding"
	case JourneyBrandBuilding:
		return "Brand Building"
	case JourneyLaunch:
		return "Launch"
	case JourneyLive:
		return "Live"
	case JourneyPaused:
		return "Paused"
	case JourneyClosed:
		return "Closed"
	}
	return string(s)
}

type HealthScore string

const (
	HealthGreen  HealthScore = "GREEN"
	HealthYellow HealthScore = "YELLOW"
	HealthRed    HealthScore = "RED"
)

var HealthScores = []HealthScore{HealthGreen, HealthYellow, HealthRed}

func (h HealthScore) Valid() bool {
	return h == HealthGreen || h == HealthYellow || h == HealthRed
}

func (h HealthScore) Display() string {
	switch h {
	case HealthGreen:
		return "Green - On Track"
	case HealthYellow:
		return "Yellow - Needs Attention"
	case HealthRed:
		return "Red - Urgent"
	}
	return string(h)
}

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleOperator UserRole = "OPERATOR"
	RoleCreator  UserRole = "CREATOR"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleOperator || r == RoleCreator
}

type ActionType string

const (
	ActionCreate              ActionType = "CREATE"
	ActionUpdate              ActionType = "UPDATE"
	ActionDelete              ActionType = "DELETE"
	ActionViewCredential      ActionType = "VIEW_CREDENTIAL"
	ActionGenerateDeliverable ActionType = "GENERATE_DELIVERABLE"
)

type DeliverableStatus string

const (
	DeliverablePending    DeliverableStatus = "PENDING"
	DeliverableGenerating DeliverableStatus = "GENERATING"
	DeliverableCompleted  DeliverableStatus = "COMPLETED"
	DeliverableFailed     DeliverableStatus = "FAILED"
)

func (s DeliverableStatus) Valid() bool {
	switch s {
	case DeliverablePending, DeliverableGenerating, DeliverableCompleted, DeliverableFailed:
		return true
	}
	return false
}

// Target model names recorded on audit entries.
const (
	TargetCreator     = "Creator"
	TargetCredential  = "Credential"
	TargetMilestone   = "Milestone"
	TargetDeliverable = "AIDeliverable"
)
