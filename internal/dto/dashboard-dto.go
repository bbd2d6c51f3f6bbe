package dto

// ReceptionistOverviewDTO — верхние счётчики дашборда ресепшн.
type ReceptionistOverviewDTO struct {
	TotalAppointments    uint64 `json:"totalAppointments"`
	TotalCustomers       uint64 `json:"totalCustomers"`
	PendingConsultations uint64 `json:"pendingConsultations"`
	TodayRevenue         int64  `json:"todayRevenue"`
}

type ActivityDTO struct {
	ID         uint64 `json:"id"`
	Action     string `json:"action"`
	EntityType string `json:"entityType"`
	ActorName  string `json:"actorName,omitempty"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"createdAt"`
}

// ReceptionistDashboardDTO собирается из трёх независимых выборок.
// Частичный отказ допустим: упавшая секция приходит пустой, а её ошибка —
// в sectionErrors, не затирая остальные.
type ReceptionistDashboardDTO struct {
	Overview             ReceptionistOverviewDTO `json:"overview"`
	TodayAppointments    []AppointmentDTO        `json:"todayAppointments"`
	RecentActivities     []ActivityDTO           `json:"recentActivities"`
	UpcomingAppointments []AppointmentDTO        `json:"upcomingAppointments"`
	SectionErrors        map[string]string       `json:"sectionErrors,omitempty"`
}

// TechnicianPerformanceDTO — личные показатели техника.
type TechnicianPerformanceDTO struct {
	TodayTotal        int `json:"todayTotal"`
	TodayCompleted    int `json:"todayCompleted"`
	TotalAppointments int `json:"totalAppointments"`
	CompletionRate    int `json:"completionRate"`
}

type TechnicianDashboardDTO struct {
	TodayAppointments []AppointmentDTO         `json:"todayAppointments"`
	MyAppointments    []AppointmentDTO         `json:"myAppointments"`
	CurrentTreatment  *AppointmentDTO          `json:"currentTreatment,omitempty"`
	NextAppointment   *AppointmentDTO          `json:"nextAppointment,omitempty"`
	Performance       TechnicianPerformanceDTO `json:"performance"`
}

// PeriodStatsDTO — агрегаты за произвольный интервал (менеджерский дашборд).
type PeriodStatsDTO struct {
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	AppointmentsTotal uint64 `json:"appointmentsTotal"`
	AppointmentsDone  uint64 `json:"appointmentsDone"`
	NewCustomers      uint64 `json:"newCustomers"`
	Revenue           int64  `json:"revenue"`
}

type TopServiceDTO struct {
	ServiceID    uint64 `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	Appointments uint64 `json:"appointments"`
	Revenue      int64  `json:"revenue"`
}

type StaffPerformanceDTO struct {
	TechnicianID   uint64 `json:"technicianId"`
	TechnicianName string `json:"technicianName"`
	Completed      uint64 `json:"completed"`
	NoShows        uint64 `json:"noShows"`
}

type ManagerDashboardDTO struct {
	Period       PeriodStatsDTO        `json:"period"`
	TopServices  []TopServiceDTO       `json:"topServices"`
	Staff        []StaffPerformanceDTO `json:"staffPerformance"`
}
