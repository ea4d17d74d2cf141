package models

// FactorResult is one evaluator's contribution to an analysis. Detail is
// shown verbatim to the user, so it must always read as an explanation of
// the numeric judgment.
type FactorResult struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
	Detail string  `json:"detail"`
}

// ReflectiveQuestion is one step of the lock-screen question chain.
// Phase 1 = reflect, 2 = connect, 3 = decide.
type ReflectiveQuestion struct {
	Text  string `json:"text"`
	Phase int    `json:"phase"`
	Type  string `json:"type"`
}

// RegretPrediction is the deterministic regret heuristic output.
type RegretPrediction struct {
	Probability int    `json:"probability"`
	Level       string `json:"level"`
	Message     string `json:"message"`
}

// MoodStatus summarizes the latest mood check-in for the context snapshot.
type MoodStatus struct {
	Mood      string `json:"mood"`
	Emoji     string `json:"emoji"`
	Intensity int    `json:"intensity"`
	Since     string `json:"since"`
}

// GoalStatus summarizes the active savings goal for the context snapshot.
type GoalStatus struct {
	Name      string  `json:"name"`
	Target    float64 `json:"target"`
	Current   float64 `json:"current"`
	Progress  float64 `json:"progress"`
	Remaining float64 `json:"remaining"`
}

// TopTrigger names the category that most often scores as impulse-risk.
type TopTrigger struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// UserContext is the cross-view snapshot returned with every analysis and
// from GET /api/transactions/context.
type UserContext struct {
	MoodStatus    *MoodStatus `json:"mood_status,omitempty"`
	ActiveGoal    *GoalStatus `json:"active_goal,omitempty"`
	TopTrigger    *TopTrigger `json:"top_trigger,omitempty"`
	ControlStreak int         `json:"control_streak"`
	TotalSaved    float64     `json:"total_saved"`
}

// AnalysisResult is ephemeral: it is returned to the client and never
// persisted. Invariants: factor weights sum to 100 and
// 0 <= ImpulseScore <= 100.
type AnalysisResult struct {
	ImpulseScore        float64                 `json:"impulse_score"`
	RiskLevel           string                  `json:"risk_level"`
	Factors             map[string]FactorResult `json:"factors"`
	ShouldLock          bool                    `json:"should_lock"`
	LockThreshold       float64                 `json:"lock_threshold"`
	LockDuration        int                     `json:"lock_duration"`
	MLProbability       *float64                `json:"ml_probability"`
	Regret              RegretPrediction        `json:"regret"`
	SavingsImpact       string                  `json:"savings_impact"`
	AIMessage           string                  `json:"ai_message"`
	ReflectiveQuestion  string                  `json:"reflective_question"`
	ReflectiveQuestions []ReflectiveQuestion    `json:"reflective_questions"`
	AccountabilityAlert string                  `json:"accountability_alert,omitempty"`
	UserContext         UserContext             `json:"user_context"`
	Settings            AnalysisSettings        `json:"settings"`
	TransactionData     TransactionData         `json:"transaction_data"`
}

// AnalysisSettings echoes the toggles the lock UI needs.
type AnalysisSettings struct {
	EnableBreathing  bool `json:"enable_breathing"`
	EnableMoodAlerts bool `json:"enable_mood_alerts"`
}

// TransactionData echoes the candidate back so the client can replay it on
// commit or cancel without re-reading the form.
type TransactionData struct {
	Amount    float64 `json:"amount"`
	Merchant  string  `json:"merchant"`
	Category  string  `json:"category"`
	Timestamp string  `json:"timestamp"`
}
