package visionhub

// Types in this package mirror the VisionHub backend's JSON contract. The
// backend owns every record; the console only decodes what it renders.
// Timestamps stay as strings because the backend emits several formats and
// the console merely formats them for display.

// User is an account record. Password is write-only and never echoed back.
type User struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	FullName   string `json:"fullName,omitempty"`
	Department string `json:"department,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Category groups videos. Name is unique backend-side.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Video is a catalog entry.
type Video struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Views        int    `json:"views"`
	IsFeatured   bool   `json:"isFeatured"`
	CategoryID   *int   `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Group is a team of users.
type Group struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	MemberCount int    `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

// Permission is one entry of the read-only permission matrix.
type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PasswordPolicy describes password requirements. The backend keeps exactly
// one policy active at a time; the console does not re-validate that.
type PasswordPolicy struct {
	ID                     int    `json:"id"`
	Name                   string `json:"name"`
	MinLength              int    `json:"min_length"`
	RequireUppercase       bool   `json:"require_uppercase"`
	RequireLowercase       bool   `json:"require_lowercase"`
	RequireNumbers         bool   `json:"require_numbers"`
	RequireSpecialChars    bool   `json:"require_special_chars"`
	MaxAgeDays             int    `json:"max_age_days"`
	HistoryCount           int    `json:"history_count"`
	LockoutAttempts        int    `json:"lockout_attempts"`
	LockoutDurationMinutes int    `json:"lockout_duration_minutes"`
	IsActive               bool   `json:"is_active"`
	CreatedAt              string `json:"created_at"`
}

// ReportReason is a selectable reason for reporting a video.
type ReportReason struct {
	ID        int    `json:"id"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

// Report is a user-submitted video report. Resolving one deletes it.
type Report struct {
	ID         int    `json:"id"`
	VideoID    int    `json:"videoId"`
	VideoTitle string `json:"videoTitle"`
	Reason     string `json:"reason"`
	UserID     string `json:"userId"`
	CreatedAt  string `json:"created_at"`
}

// LogEntry is one row of the activity log.
type LogEntry struct {
	UserID    string `json:"userId"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

// Backup describes a backup archive. Immutable once created.
type Backup struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Created  string `json:"created"`
}

// BackupStatus reports the backup subsystem configuration.
type BackupStatus struct {
	BackupPath      string `json:"backupPath"`
	DBPath          string `json:"dbPath"`
	UploadsPath     string `json:"uploadsPath"`
	ScheduleEnabled bool   `json:"scheduleEnabled"`
	BackupSchedule  string `json:"backupSchedule"`
}

// BackupResult is the payload of a backup or restore operation.
type BackupResult struct {
	Filename     string `json:"filename,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	RestoredFrom string `json:"restoredFrom,omitempty"`
}

// Settings holds the site-wide presentation settings plus the database
// copy of the Gemini key, when one is stored.
type Settings struct {
	SiteName     string `json:"siteName"`
	PrimaryColor string `json:"primaryColor"`
	GeminiAPIKey string `json:"geminiApiKey,omitempty"`
}

// AIStatus reports the AI integration state. The two source flags tell
// the settings screen where the active key comes from.
type AIStatus struct {
	Initialized  bool   `json:"initialized"`
	HasAPIKey    bool   `json:"hasApiKey"`
	HasEnvAPIKey bool   `json:"hasEnvApiKey"`
	HasDBAPIKey  bool   `json:"hasDbApiKey"`
	Model        string `json:"model,omitempty"`
}

// HealthSummary nests the per-area health snapshots of the overview.
type HealthSummary struct {
	System struct {
		CPUUsage    float64 `json:"cpuUsage"`
		MemoryUsage float64 `json:"memoryUsage"`
	} `json:"system"`
	Database struct {
		Status       string `json:"status"`
		ResponseTime int    `json:"responseTime"`
	} `json:"database"`
	Application struct {
		Status string  `json:"status"`
		Uptime float64 `json:"uptime"`
	} `json:"application"`
}

// HealthOverview is the aggregated system health verdict.
type HealthOverview struct {
	Overall     string        `json:"overall"`
	LastChecked string        `json:"lastChecked"`
	Summary     HealthSummary `json:"summary"`
}

// HealthMetrics carries the detailed metric panels.
type HealthMetrics struct {
	System struct {
		CPU struct {
			Cores int `json:"cores"`
		} `json:"cpu"`
		Memory struct {
			Total int64 `json:"total"`
			Used  int64 `json:"used"`
		} `json:"memory"`
		Uptime struct {
			System float64 `json:"system"`
		} `json:"uptime"`
		Platform struct {
			Type string `json:"type"`
		} `json:"platform"`
	} `json:"system"`
	Database struct {
		Status       string `json:"status"`
		ResponseTime int    `json:"responseTime"`
		Stats        struct {
			Videos       int    `json:"videos"`
			Users        int    `json:"users"`
			DatabaseSize string `json:"databaseSize"`
		} `json:"stats"`
	} `json:"database"`
	API struct {
		ActiveConnections   int     `json:"activeConnections"`
		AverageResponseTime int     `json:"averageResponseTime"`
		ErrorRate           float64 `json:"errorRate"`
	} `json:"api"`
	ExternalServices struct {
		GeminiAI struct {
			Status   string `json:"status"`
			LastTest string `json:"lastTest"`
		} `json:"geminiAI"`
	} `json:"externalServices"`
}

// HealthAlert is one active alert from the health monitor.
type HealthAlert struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Envelope response shapes. Every backend endpoint wraps its payload in
// {success: bool, <key>: <data>} and may add an error string.

type UsersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
	Error   string `json:"error,omitempty"`
}

type UserResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Error   string `json:"error,omitempty"`
}

type CategoriesResponse struct {
	Success    bool       `json:"success"`
	Categories []Category `json:"categories"`
	Error      string     `json:"error,omitempty"`
}

type CategoryResponse struct {
	Success  bool     `json:"success"`
	Category Category `json:"category"`
	Error    string   `json:"error,omitempty"`
}

type VideosResponse struct {
	Success bool    `json:"success"`
	Videos  []Video `json:"videos"`
	Error   string  `json:"error,omitempty"`
}

type GroupsResponse struct {
	Success bool    `json:"success"`
	Groups  []Group `json:"groups"`
	Error   string  `json:"error,omitempty"`
}

type GroupResponse struct {
	Success bool   `json:"success"`
	Group   Group  `json:"group"`
	Error   string `json:"error,omitempty"`
}

// PermissionsResponse carries the matrix keyed by permission category.
type PermissionsResponse struct {
	Success     bool                    `json:"success"`
	Permissions map[string][]Permission `json:"permissions"`
	Error       string                  `json:"error,omitempty"`
}

type PoliciesResponse struct {
	Success  bool             `json:"success"`
	Policies []PasswordPolicy `json:"policies"`
	Error    string           `json:"error,omitempty"`
}

type PolicyResponse struct {
	Success bool            `json:"success"`
	Policy  *PasswordPolicy `json:"policy"`
	Error   string          `json:"error,omitempty"`
}

type ReasonsResponse struct {
	Success bool           `json:"success"`
	Reasons []ReportReason `json:"reasons"`
	Error   string         `json:"error,omitempty"`
}

type ReasonResponse struct {
	Success bool         `json:"success"`
	Reason  ReportReason `json:"reason"`
	Error   string       `json:"error,omitempty"`
}

type ReportsResponse struct {
	Success bool     `json:"success"`
	Reports []Report `json:"reports"`
	Error   string   `json:"error,omitempty"`
}

type LogsResponse struct {
	Success bool       `json:"success"`
	Logs    []LogEntry `json:"logs"`
	Error   string     `json:"error,omitempty"`
}

type BackupStatusResponse struct {
	Success bool         `json:"success"`
	Backup  BackupStatus `json:"backup"`
	Error   string       `json:"error,omitempty"`
}

// BackupListResponse mirrors the backend's doubly nested list payload.
type BackupListResponse struct {
	Success bool `json:"success"`
	Backups struct {
		Backups []Backup `json:"backups"`
	} `json:"backups"`
	Error string `json:"error,omitempty"`
}

type BackupResultResponse struct {
	Success bool          `json:"success"`
	Backup  *BackupResult `json:"backup"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type SettingsResponse struct {
	Success  bool     `json:"success"`
	Settings Settings `json:"settings"`
	Error    string   `json:"error,omitempty"`
}

type AIStatusResponse struct {
	Success bool     `json:"success"`
	AI      AIStatus `json:"ai"`
	Error   string   `json:"error,omitempty"`
}

// The AI tool endpoints double-wrap their payloads: the outer envelope
// reports transport success, the inner one whether the model produced a
// usable result.

type AICategorizeResponse struct {
	Success        bool `json:"success"`
	Categorization struct {
		Success  bool   `json:"success"`
		Category string `json:"category"`
	} `json:"categorization"`
	Error string `json:"error,omitempty"`
}

type AITagsResponse struct {
	Success bool `json:"success"`
	Tags    struct {
		Success bool     `json:"success"`
		Tags    []string `json:"tags"`
	} `json:"tags"`
	Error string `json:"error,omitempty"`
}

type AIAnalyzeResponse struct {
	Success  bool `json:"success"`
	Analysis struct {
		Success  bool `json:"success"`
		Analysis struct {
			QualityScore    float64 `json:"qualityScore"`
			DifficultyLevel string  `json:"difficultyLevel"`
		} `json:"analysis"`
	} `json:"analysis"`
	Error string `json:"error,omitempty"`
}

type AISummaryResponse struct {
	Success bool `json:"success"`
	Summary struct {
		Success bool   `json:"success"`
		Summary string `json:"summary"`
	} `json:"summary"`
	Error string `json:"error,omitempty"`
}

type AIBatchResponse struct {
	Success        bool   `json:"success"`
	ProcessedCount int    `json:"processedCount"`
	Error          string `json:"error,omitempty"`
}

// CompressionStatus describes the server-side video compression service.
type CompressionStatus struct {
	Enabled          bool     `json:"enabled"`
	SupportedFormats []string `json:"supportedFormats"`
	UploadsPath      string   `json:"uploadsPath"`
	MaxFileSize      string   `json:"maxFileSize"`
}

type CompressionStatusResponse struct {
	Success     bool              `json:"success"`
	Compression CompressionStatus `json:"compression"`
	Error       string            `json:"error,omitempty"`
}

// OptimizationResult reports the size delta of one optimization run.
// Sizes are bytes.
type OptimizationResult struct {
	OriginalSize     int64   `json:"originalSize"`
	OptimizedSize    int64   `json:"optimizedSize"`
	Savings          int64   `json:"savings"`
	CompressionRatio float64 `json:"compressionRatio"`
	OptimizedURL     string  `json:"optimizedUrl,omitempty"`
}

type OptimizeResponse struct {
	Success      bool               `json:"success"`
	Optimization OptimizationResult `json:"optimization"`
	Message      string             `json:"message,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type ThumbnailResponse struct {
	Success   bool `json:"success"`
	Thumbnail struct {
		ThumbnailURL string `json:"thumbnailUrl"`
	} `json:"thumbnail"`
	Error string `json:"error,omitempty"`
}

type BatchOptimizeResponse struct {
	Success           bool `json:"success"`
	BatchOptimization struct {
		SuccessCount int `json:"successCount"`
	} `json:"batchOptimization"`
	Error string `json:"error,omitempty"`
}

type HealthOverviewResponse struct {
	Success  bool           `json:"success"`
	Overview HealthOverview `json:"overview"`
	Error    string         `json:"error,omitempty"`
}

type HealthMetricsResponse struct {
	Success bool          `json:"success"`
	Metrics HealthMetrics `json:"metrics"`
	Error   string        `json:"error,omitempty"`
}

type HealthAlertsResponse struct {
	Success bool          `json:"success"`
	Alerts  []HealthAlert `json:"alerts"`
	Error   string        `json:"error,omitempty"`
}

// ExportResponse wraps a generated report body (e.g. CSV).
type ExportResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
	Error   string `json:"error,omitempty"`
}

// LoginResponse is returned by the backend login endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse is the minimal envelope for mutations whose payload the
// console does not read.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
