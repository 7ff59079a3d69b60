package cronjobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled function.
type Job struct {
	Name string
	Spec string // cron expression or descriptor, e.g. "@every 30s"
	Run  func()
}

// Every returns the cron descriptor for a fixed interval.
func Every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}

// InitCronJobs schedules the jobs on a new cron runner and starts it.
// Jobs that fail to parse are logged and skipped.
func InitCronJobs(jobs ...Job) *cron.Cron {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(job.Spec, func() {
			log.Printf("CronJob: %s Running", job.Name)
			job.Run()
		})
		if err != nil {
			log.Printf("Error scheduling %s: %v", job.Name, err)
		}
	}

	c.Start()
	return c
}
