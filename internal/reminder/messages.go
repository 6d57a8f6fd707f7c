package reminder

import "math/rand/v2"

// Title is the heading of every reminder notification.
const Title = "Python Learning"

// DailyMessages is the pool the daily reminder picks from.
var DailyMessages = []string{
	"Time to learn Python! Don't skip the practice!",
	"Hi! How's the learning going? Now is a great time to practice!",
	"Reminder: 1-1.5h of theory, 1-2h of practice!",
	"Python is waiting for you! Open the app and learn!",
	"A day isn't wasted if you wrote at least one line of code!",
	"Learning Python? Great! Practice every day!",
	"Programming is a skill. The more practice, the better!",
	"Take a break and solve a couple of Codewars katas!",
	"Remember: consistency beats intensity!",
	"Your progress is up to you! Start right now!",
}

// TestMessages is the pool for on-demand test notifications.
var TestMessages = []string{
	"Code doesn't work? Great. You just found one more way NOT to do it.",
	"A programmer is a machine for turning coffee into code.",
	"A mistake isn't a failure, it's a free lesson.",
	"Every bug is a mini quest.",
	"If the code worked the first time, you forgot something.",
	"Stack Overflow is an introvert's best friend.",
	"Programming is a sport. Variables instead of dumbbells.",
	"Painful today, senior tomorrow.",
	"The more errors, the closer the success.",
	"A real developer never gives up. They google.",
}

// Quotes are shown on the home screen.
var Quotes = []string{
	"Every day brings you closer to your goal!",
	"Good on you for learning!",
	"Practice is the key to success!",
	"Mistakes are part of learning!",
	"Keep going, you're on the right track!",
	"Small steps lead to big results!",
	"Today you'll be better than yesterday!",
	"Programming is a creative craft!",
	"Every line of code is progress!",
	"Believe in yourself and you'll get there!",
}

// Picker chooses uniformly from a pool. Picks are independent.
type Picker func(pool []string) string

// RandomPick is the default Picker.
func RandomPick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.IntN(len(pool))]
}

// Quote returns a random home-screen quote.
func Quote() string {
	return RandomPick(Quotes)
}
