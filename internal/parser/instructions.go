package parser

import "github.com/reportline/sheetparser/internal/schema"

// BuildInstructions renders the ordered submission steps for one complaint.
// Steps carry {placeholder} variables; the downstream templating step
// substitutes them from the complaint's value items.
//
// The review and rating steps are appended only when the corresponding
// optional values are present, so the instruction list length varies
// per complaint.
func BuildInstructions(values schema.ComplaintValues) []string {
	instructions := []string{
		"Download the app '{appName}' from App Store",
		"Open the app and use it for 10 minutes to experience the issues",
		"After 10 minutes, go to App Store and find '{appName}'",
		"Navigate to the app page and scroll down",
		"Find and click 'Report a Problem' button",
		"Select {iWouldLikeTo} from dropdown and click Continue",
		"Select {tellUsMore} from dropdown",
		"Select {forWhatReason} from dropdown",
		"Write your complaint text: {describeTheIssue}",
		"Submit the report",
	}

	if values.AppStoreReview != nil || values.AppStoreRating != nil {
		instructions = append(instructions,
			"Go back to the app page and scroll to 'Reviews' section",
			"Click 'Write a Review' button",
		)
		if values.AppStoreReview != nil {
			instructions = append(instructions, "Write App Store review: {appStoreReview}")
		}
		if values.AppStoreRating != nil {
			instructions = append(instructions, "Set App Store rating to {appStoreRating}")
		}
		instructions = append(instructions, "Submit the review")
	}

	return instructions
}
