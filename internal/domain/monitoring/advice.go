package monitoring

// AdviceCount is the number of tips GenerateAdvice returns.
const AdviceCount = 5

// AdvicePool is the fixed set of general health tips.
var AdvicePool = []string{
	"Drink at least 8 glasses of water a day to stay hydrated.",
	"Get at least 30 minutes of moderate exercise every day.",
	"Sleep 7 to 8 hours each night for proper recovery.",
	"Eat 5 servings of fruit and vegetables a day.",
	"Cut down on processed foods and refined sugars.",
	"Practise relaxation techniques such as meditation or yoga.",
	"Keep a correct posture when sitting and walking.",
	"Wash your hands often to prevent illness.",
	"Limit screen time, especially before going to sleep.",
	"Have regular preventive medical check-ups.",
	"Avoid excessive alcohol and tobacco use.",
	"Keep a healthy weight for your age and height.",
	"Look after your mental health: talk to someone if you feel overwhelmed.",
	"Protect your skin from the sun with sunscreen.",
	"Keep up a proper oral hygiene routine.",
}
