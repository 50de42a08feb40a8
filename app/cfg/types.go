package cfg

type Cfg struct {
	// Persistence
	DBPath string

	// Application configuration
	SitesDir          string
	Port              string
	APIToken          string
	NotifyEmail       string
	CourseHost        string
	WorkerCount       int
	SchedulerInterval int

	// Outbound mail
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
