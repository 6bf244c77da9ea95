package texts

var english = map[string]string{
	// Welcome and menus.
	"welcome": `🌾 *Welcome to AgroMatch!* 🌾

We connect agricultural workers with farm employers.

Please select your role:
1️⃣ I'm looking for farm work (Worker)
2️⃣ I'm hiring workers (Farm Owner)

Reply with 1 or 2`,

	"role_retry": "Please reply with 1 (for Worker) or 2 (for Farm Owner)",

	"worker_menu": `🌾 *Worker Menu*

1️⃣ Browse available jobs
2️⃣ Update my preferences
3️⃣ View my job applications
4️⃣ Chat with farm owner
5️⃣ Help

Reply with the number of your choice`,

	"owner_menu": `🏡 *Farm Owner Menu*

1️⃣ Post a new job
2️⃣ View my job postings
3️⃣ View applicants
4️⃣ Chat with applicants
5️⃣ Help

Reply with the number of your choice`,

	"help": `❓ *AgroMatch Help*

• Type 'menu' anytime to return to main menu
• Type 'help' to see this message
• Type 'english' or 'español' to switch language

For support, contact: support@agromatch.example`,

	"fallback": "I didn't understand that. Please try again or type 'menu' for main menu.",

	"language_set": "✅ Language changed to English",

	// Worker registration.
	"worker_reg_start": `✅ Great! Let's get you registered.

📝 *Step 1 of 3: Personal Information*

What's your full name?`,

	"worker_reg_location": `Nice to meet you, {name}! 👋

📍 *Step 2 of 3: Location*

What's your location? (City or area where you're looking for work)`,

	"worker_reg_id": `📸 *Step 3 of 3: ID Verification*

Please upload a photo of your ID card or driver's license.

This helps us keep AgroMatch safe for everyone.`,

	"worker_id_missing": "Please send a photo of your ID card.",

	"worker_pref_work_type": `✅ ID received! Thank you.

Now let's set up your job preferences to find the best matches.

🛠 *Work Type Preferences*
What type of farm work are you interested in? (Select all that apply)

1️⃣ Harvesting
2️⃣ Planting
3️⃣ Irrigation
4️⃣ Livestock care
5️⃣ General labor
6️⃣ All types of work

Reply with numbers separated by commas (e.g., 1,2,3) or just one number:`,

	"work_type_retry": `Please select valid options (1-6).

Reply with numbers separated by commas (e.g., 1,2,3):`,

	"worker_pref_distance": `📍 *Work Location Preference*

How far are you willing to travel for work?

1️⃣ Up to 10 miles
2️⃣ Up to 25 miles
3️⃣ Up to 50 miles
4️⃣ Any distance

Reply with 1, 2, 3, or 4:`,

	"distance_retry": `Please select a valid option (1-4).

1️⃣ Up to 10 miles
2️⃣ Up to 25 miles
3️⃣ Up to 50 miles
4️⃣ Any distance

Reply with 1, 2, 3, or 4:`,

	"worker_pref_hours": `⏰ *Working Hours Preference*

What's your preferred work schedule?

1️⃣ Full-time (40+ hours/week)
2️⃣ Part-time (20-40 hours/week)
3️⃣ Flexible (open to both full-time and part-time)

Reply with 1, 2, or 3:`,

	"hours_retry": "Please reply with 1, 2, or 3",

	// Recommendations.
	"profile_complete": "✅ *Profile Complete!*",

	"no_jobs": "No job matches found right now. We'll notify you when new jobs matching your preferences are posted.",

	"found_jobs": `We found {count} job match(es) for you!
(Sorted by highest pay)`,

	"select_job": `*Select a job to view details and apply:*

Reply with the job number (1-{max}) or type 'menu' to return to main menu.`,

	"job_line": `*{index}. {work_type}*
🏡 {farm_name}
💰 {pay}
📍 {location}
⏰ {hours}
👥 {workers} workers needed
`,

	"job_card": `━━━━━━━━━━━━━━━━━━━━
*Job Details*
━━━━━━━━━━━━━━━━━━━━

🏡 *Farm:* {farm_name}

🌾 *Type of Work*
{work_type}

👥 *Workers Needed*
{workers} people

⏰ *Work Hours*
{hours}

💰 *Payment*
{pay}

📍 *Work Location*
{location}

🚗 *Transportation*
{transportation}

📍 *Meeting Point*
{meeting_point}

📋 *Additional Details:*
{description}

━━━━━━━━━━━━━━━━━━━━`,

	"apply_question": `*Would you like to apply for this job?*

1️⃣ Yes, apply for this job
2️⃣ No, go back to job list

Reply with 1 or 2:`,

	"review_header": `━━━━━━━━━━━━━━━━━━━━
*Job {index} of {total}*
━━━━━━━━━━━━━━━━━━━━`,

	"review_question": `*Are you interested in this job?*

1️⃣ Yes, apply for this job
2️⃣ No, show me the next job

Reply with 1 or 2 (or type 'menu' to return to main menu):`,

	"review_retry": "Please reply with 1 (Apply) or 2 (Show next job), or type 'menu' for main menu.",

	"no_more_jobs": `✅ *No more job matches available.*

You've reviewed all matching jobs for now. We'll notify you when new jobs are posted.`,

	"pick_number_range": "Please enter a number between 1 and {max}, or type 'menu'.",
	"pick_number":       "Please enter a valid number (1-{max}) or type 'menu'.",
	"job_not_found":     "Job not found. Please try again or type 'menu'.",
	"apply_retry":       "Please reply with 1 (Apply) or 2 (Go back).",

	"applied": `✅ *Application Submitted!*

The farm owner has been notified and will contact you soon.

*Job Details:*
• Position: {work_type}
• Farm: {farm_name}
• Pay: {pay}
• Match ID: {match_id}`,

	"application_declined": "No problem!",

	"new_application": `🎉 *New Job Application!*

{name} has applied for your job: {work_type}

Location: {location}
Pay: {pay}

Type '3' from the menu to view applicants.`,

	// Applications list.
	"no_applications":     "You haven't applied to any jobs yet.",
	"applications_header": "📋 *Your Job Applications:*",

	// Preference updates.
	"update_menu": `⚙️ *Update Profile*

What would you like to update?

1️⃣ Work type preferences
2️⃣ Location (city/state)
3️⃣ Minimum pay rate
4️⃣ Travel distance
5️⃣ Hours preference
6️⃣ Back to main menu

Reply with number (1-6):`,

	"update_menu_retry": "Please reply with a number from 1 to 6",

	"update_work_type": `🛠 *Update Work Type Preferences*

Current preferences: {current}

What type of farm work are you interested in?

Examples: Harvesting, Planting, Irrigation, Livestock care, General labor

Type your preferred work types (separated by commas if multiple):`,

	"update_location": `📍 *Update Location*

Current location: {current}

Where are you located?

Example: Chapel Hill, NC`,

	"update_pay_rate": `💰 *Update Minimum Pay Rate*

Current minimum: ${current}/hour

What's your minimum acceptable hourly pay rate?

Example: 18`,

	"update_distance": `🚗 *Update Travel Distance*

Current max distance: {current} miles

How far are you willing to travel for work? (in miles)

Example: 20`,

	"update_hours": `⏰ *Update Hours Preference*

Current preference: {current}

What's your preferred work schedule?

1️⃣ Full-time (40+ hours/week)
2️⃣ Part-time (20-40 hours/week)
3️⃣ Flexible (open to both)

Reply with 1, 2, or 3:`,

	"updated_work_type": `✅ *Work Type Updated!*

New preferences: {value}`,

	"updated_location": `✅ *Location Updated!*

New location: {value}`,

	"updated_pay_rate": `✅ *Pay Rate Updated!*

New minimum: ${value}/hour`,

	"updated_distance": `✅ *Travel Distance Updated!*

New max distance: {value} miles`,

	"updated_hours": `✅ *Hours Preference Updated!*

New preference: {value}`,

	"invalid_pay_rate":   "Please enter a valid number for the hourly rate. Example: 18",
	"invalid_distance":   "Please enter a valid number. Example: 20",
	"hours_update_retry": "Please reply with 1 (Full-time), 2 (Part-time), or 3 (Flexible)",

	// Owner registration.
	"owner_reg_start": `✅ Welcome Farm Owner!

📝 *Step 1 of 3*

What's your full name?`,

	"owner_reg_farm_name": `Nice to meet you, {name}! 👋

📝 *Step 2 of 3*

What's your farm's name?`,

	"owner_reg_location": `📝 *Step 3 of 3*

Where is your farm located? (City or area)`,

	"owner_reg_done": `✅ Registration Complete!

🏡 Farm: {farm_name}
📍 {location}`,

	// Job posting.
	"job_post_start": `📋 *Post a New Job*

🌾 What type of work is it?

Example: Tomato Harvesting`,

	"job_post_work_type_retry": "Please describe the type of work. Example: Tomato Harvesting",

	"job_post_workers": `👥 How many workers do you need?

Example: 5`,

	"job_post_workers_retry": "Please enter a valid number of workers. Example: 5",

	"job_post_hours": `⏰ What are the work hours?

Example: 6:00 AM - 2:00 PM`,

	"job_post_payment_type": `💰 How will you pay?

1️⃣ Per hour
2️⃣ Per day
3️⃣ Per task

Reply with 1, 2, or 3:`,

	"job_post_payment_type_retry": "Please reply with 1 (Per hour), 2 (Per day), or 3 (Per task)",

	"job_post_payment_amount": `💵 How much will you pay ({unit})?

Example: 18`,

	"job_post_amount_retry": "Please enter a valid amount. Example: 18",

	"job_post_location": `📍 Where is the work located?

Example: Green Valley Farm, Sacramento`,

	"job_post_transportation": `🚗 Is transportation provided?

1️⃣ Yes, transportation provided
2️⃣ No, workers arrange their own

Reply with 1 or 2:`,

	"job_post_transport_retry": "Please reply with 1 (Provided) or 2 (Not provided)",

	"job_post_meeting_point": `📍 Where should workers meet for pickup?

Example: Town Square, 5:30 AM`,

	"job_post_description": `📋 Any additional details?

Type the details, or 'skip' to finish.`,

	"job_posted": `✅ *Job Posted Successfully!*

Your job is now visible to matching workers.

• Position: {work_type}
• Workers needed: {workers}
• Pay: {pay}
• Job ID: {job_id}`,

	// Owner listings.
	"my_jobs_none":   "You haven't posted any jobs yet.",
	"my_jobs_header": "📋 *Your Job Postings:*",
	"my_jobs_line": `*{work_type}*
Pay: {pay}
Status: {status}
Applications: {applications}
━━━━━━━━━━━
`,

	"applicants_none":   "No one has applied to your jobs yet.",
	"applicants_header": "👥 *Applicants to your jobs:*",
	"applicant_line":    "• {name}: {work_type} (match {match_id})",

	// Chat relay.
	"chat_start": `💬 *Chat Started*

You're now chatting with {name}.

Type your message to send. Type 'endchat' to return to main menu.`,

	"chat_sent":  "✅ Message sent!",
	"chat_ended": "Chat ended.",
	"chat_none":  "No one to chat with yet. Apply to a job first.",

	"chat_incoming": `💬 Message from {name}:

{message}

(Reply to continue conversation, or type 'menu' for main menu)`,

	// Digest.
	"digest_new_jobs": `🔔 *New jobs match your preferences!*

{count} new job(s) were just posted. Type '1' from the menu to browse them.`,
}
