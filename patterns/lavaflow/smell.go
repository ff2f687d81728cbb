// Package lavaflow shows hardened leftovers from earlier designs that nobody
// dares to remove, with characterization tests that make removing them safe.
package lavaflow

import "fmt"

// LAVA FLOW: nobody knows what this does or if it's still needed.
// In the codebase since 2015.
func mysteriousLegacyFunction(data []any) []any {
	/*
		TODO: Figure out what this does
		NOTE: Don't touch this! Bob said it's important but Bob left in 2017
	*/
	result := make([]any, 0)
	for _, item := range data {
		if itemMap, ok := item.(map[string]any); ok {
			if legacyFlag, exists := itemMap["legacy_flag"]; exists && legacyFlag.(bool) {
				processed := processLegacyData(itemMap)
				if processed != nil {
					result = append(result, processed)
				}
			}
		}
	}
	return result
}

// LAVA FLOW: magic numbers nobody understands.
func processLegacyData(item map[string]any) any {
	if value, ok := item["value"].(float64); ok {
		if value > 42 {
			return value * 1.337
		}
	}
	return nil
}

// DataProcessor carries flags from three previous implementations.
type DataProcessor struct {
	legacyMode                bool // backwards compatibility
	useOldAlgorithm           bool // TODO: Remove after migration (from 2018)
	enableExperimentalFeature bool // experimental in 2016

	oldDBConnection    any // from when we used MySQL
	backupDBConnection any // for the backup system we removed
}

func NewDataProcessor() *DataProcessor {
	return &DataProcessor{enableExperimentalFeature: true}
}

func (dp *DataProcessor) ProcessData(data []int) []int {
	// LAVA FLOW: legacy mode is never true
	if dp.legacyMode {
		return dp.legacyProcess(data)
	}
	// LAVA FLOW: feature flag that's always false
	if dp.useOldAlgorithm {
		return dp.oldAlgorithm(data)
	}
	return dp.newProcess(data)
}

func (dp *DataProcessor) newProcess(data []int) []int {
	result := make([]int, len(data))
	for i, v := range data {
		result[i] = v * 2
	}
	return result
}

// LAVA FLOW: legacy implementation from 2016.
func (dp *DataProcessor) legacyProcess(data []int) []int {
	/*
		LEGACY PROCESSING LOGIC - DO NOT MODIFY
		Last modified: 2016-03-15 by John
		Note: This is critical for backwards compatibility with System X
		(System X was decommissioned in 2017)
	*/
	result := make([]int, 0)
	for _, item := range data {
		temp := float64(item) * 1.5
		if temp > 100 {
			temp = temp / 2
		}
		result = append(result, int(temp))
	}
	return result
}

// LAVA FLOW: the algorithm legacyProcess replaced, kept "for reference".
func (dp *DataProcessor) oldAlgorithm(data []int) []int {
	result := make([]int, len(data))
	for i, v := range data {
		result[i] = int(float64(v) * 1.5)
	}
	return result
}

// LAVA FLOW: feature that was never released.
func (dp *DataProcessor) ExportToXML(data []int) error {
	// TODO: Complete implementation (stakeholder meeting was in 2015)
	return nil
}

// OldUserManager - LAVA FLOW: deprecated, last used: unknown.
type OldUserManager struct {
	users map[string]map[string]any
}

func NewOldUserManager() *OldUserManager {
	return &OldUserManager{users: make(map[string]map[string]any)}
}

func (oum *OldUserManager) AddUser(username, email string) {
	oum.users[username] = map[string]any{
		"email":   email,
		"created": "2015-01-01",
	}
}

func (oum *OldUserManager) GetUser(username string) map[string]any {
	return oum.users[username]
}

// LAVA FLOW: configuration from various eras. Some keys are still read.
var legacyConfig = map[string]any{
	"old_api_endpoint": "http://old-api.example.com",
	"timeout":          30,
	"max_retries":      3,
	"use_cache":        true,
	"cache_ttl":        3600,
	"enable_feature_x": false,
	"enable_feature_y": true,
	"debug_mode":       false,
}

const (
	MagicNumber        = 42   // Don't change! (Why? Nobody remembers)
	AnotherMagicNumber = 1337 // Used somewhere... maybe?
	CriticalThreshold  = 100  // This is critical! (For what?)
)

func convertToLegacyFormat(data any) any {
	return data
}

func validateLegacySchema(schema string) bool {
	return true
}

// LAVA FLOW: four generations of the same function, three of them commented out.
func processUserData(user map[string]any) map[string]any {
	// Old implementation - DO NOT DELETE
	// result := make(map[string]any)
	// for key, value := range user {
	//     if key != "password" {
	//         result[key] = value
	//     }
	// }
	// return result

	// Newer implementation - USE THIS ONE
	// filtered := make(map[string]any)
	// for k, v := range user {
	//     if k != "password" {
	//         filtered[k] = v
	//     }
	// }
	// return filtered

	// Current implementation (2022)
	result := make(map[string]any)
	for k, v := range user {
		if k != "password" && k != "secret" {
			result[k] = v
		}
	}
	return result
}

// LAVA FLOW: emergency fix from 2016 that became permanent.
func emergencyFixForBug123(data []any) []any {
	// BUG: https://bugtracker.old-company.com/123 (link dead)
	if data == nil {
		return make([]any, 0)
	}
	return data
}

// LAVA FLOW: globals from the dawn of time.
var (
	globalCache  = make(map[string]any)
	initialized  bool
	legacyLogger *LegacyLogger
)

type LegacyLogger struct {
	logFile string
	level   int
}

func initializeGlobals() {
	if !initialized {
		globalCache = make(map[string]any)
		initialized = true
	}
}

// ModernClass is the current code, still initializing the legacy layer.
type ModernClass struct {
	value int
}

func NewModernClass() *ModernClass {
	if !initialized {
		setupLegacyCompatibility()
		initialized = true
	}
	return &ModernClass{}
}

// For version 1.x clients. Version 1.x was sunset in 2019.
func setupLegacyCompatibility() {}

func (mc *ModernClass) Process(data int) int {
	// if hasLegacyFormat(data) {
	//     data = convertFromLegacy(data)
	// }
	return data * 2
}

type LegacyError struct {
	Code    int
	Message string
	Details map[string]any
}

func (e *LegacyError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func newLegacyAuthError(msg string) *LegacyError {
	return &LegacyError{Code: 1001, Message: msg}
}

var (
	EnableOldAPI           = false // removed in 2018
	UseDeprecatedFormatter = false // replaced in 2019
	LegacyModeEnabled      = false // never implemented
)
