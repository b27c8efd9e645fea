package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatRoomStateKey(roomId string) string {
	return fmt.Sprintf("room:%s:state", roomId)
}

func FormatSubmissionKey(roomId string, round int, playerId string) string {
	return fmt.Sprintf("room:%s:round:%d:submitted:%s", roomId, round, playerId)
}

func FormatRoomKeyPattern(roomId string) string {
	return fmt.Sprintf("room:%s:*", roomId)
}
