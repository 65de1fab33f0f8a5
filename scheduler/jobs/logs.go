package jobs

import (
	"fmt"
	"gocoach/pkg/logger"
	"log"
	"time"
)

// ShipLogs uploads the accumulated log file to the bucket and truncates it.
func ShipLogs(jobLogger *logger.Logger) error {
	objectKey := fmt.Sprintf("scheduler/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))

	if err := jobLogger.UploadToS3Bucket(objectKey); err != nil {
		return fmt.Errorf("couldn't ship the logs: %w", err)
	}

	log.Printf("Shipped the logs as %s", objectKey)
	return nil
}
