// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types exchanged with the rating service.

# Request Types

Types encoded as JSON request bodies:

  - NewRatingRequest: sample_id, rating (0 = text1, 1 = text2)
  - NewSampleRequest: project, text1, text2, source1, source2

# Response Types

  - NewProjectResponse: project_id, admin_token
  - ErrorResponse: error, message

# Domain Types

  - Sample: a pair of texts to compare
  - MyRating: a rating made by the calling participant
  - Rating: a project-wide rating record with the hashed rater address
  - SourceStats, SampleTally, ResultSummary: aggregated results

# Constants

Rating values:

	RatingText1 = 0
	RatingText2 = 1
*/
package models
