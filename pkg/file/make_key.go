package file

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MakeStorageKey builds the object key for a new upload:
// {owner}/{yyyy}/{MM}/{uuid}_{filename}. The random token keeps keys unique
// even when the same owner uploads the same filename twice in a month.
func MakeStorageKey(owner, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s_%s", owner, now.Year(), int(now.Month()), uuid.NewString(), filename)
}
