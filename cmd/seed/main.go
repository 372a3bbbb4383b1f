package main

import (
	"context"
	"time"

	"gymmate/fitness-server/internal/config"
	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository/mongo"

	log "github.com/sirupsen/logrus"
)

// Seeds the gym and exercise reference collections. Safe to re-run; records
// are upserted by their natural keys (gymId, exercise name).

var gyms = []domain.Gym{
	{GymID: 1, Name: "Yeditepe Fitness Center", Address: "İnönü Mahallesi\nKayışdağı/Ataşehir\n34755", Price: 999},
	{GymID: 2, Name: "Kayışdağı Fitness", Address: "Atatürk Mahallesi\nAtaşehir/İstanbul\n34758", Price: 799},
	{GymID: 3, Name: "Fitness+ Ultra Club", Address: "Barbaros Mahallesi\nÜsküdar/İstanbul\n34662", Price: 699},
}

var exercises = []domain.Exercise{
	{
		Name:        "Bench Press",
		Area:        "Chest",
		Description: "A compound exercise that primarily targets the chest muscles, along with the shoulders and triceps.",
		Instructions: []string{
			"Lie flat on a bench with your feet firmly planted on the ground",
			"Grip the barbell with hands slightly wider than shoulder-width apart",
			"Lower the bar to your chest in a controlled manner",
			"Press the bar back up to the starting position",
			"Repeat for desired number of repetitions",
		},
		TargetMuscles: []string{"Pectoralis Major", "Anterior Deltoids", "Triceps"},
		Equipment:     "Barbell",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/bench-press.jpg",
	},
	{
		Name:        "Bicep Curls",
		Area:        "Biceps",
		Description: "An isolation exercise that targets the bicep muscles in the upper arm.",
		Instructions: []string{
			"Stand with feet shoulder-width apart, holding dumbbells at your sides",
			"Keep your elbows close to your torso",
			"Curl the weights up towards your shoulders",
			"Squeeze your biceps at the top of the movement",
			"Lower the weights back down in a controlled manner",
		},
		TargetMuscles: []string{"Biceps Brachii", "Brachialis"},
		Equipment:     "Dumbbells",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/bicep-curls.jpg",
	},
	{
		Name:        "Squats",
		Area:        "Glutes",
		Description: "A fundamental compound exercise that targets the glutes, quadriceps, and hamstrings.",
		Instructions: []string{
			"Stand with feet shoulder-width apart",
			"Lower your body by bending at the hips and knees",
			"Keep your chest up and back straight",
			"Descend until your thighs are parallel to the floor",
			"Push through your heels to return to starting position",
		},
		TargetMuscles: []string{"Gluteus Maximus", "Quadriceps", "Hamstrings"},
		Equipment:     "Bodyweight",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/squats.jpg",
	},
	{
		Name:        "Treadmill Running",
		Area:        "Cardio",
		Description: "A cardiovascular exercise that improves heart health and burns calories.",
		Instructions: []string{
			"Start with a 5-minute warm-up walk",
			"Gradually increase speed to a comfortable running pace",
			"Maintain good posture with arms swinging naturally",
			"Keep a steady breathing rhythm",
			"Cool down with a 5-minute walk",
		},
		TargetMuscles: []string{"Cardiovascular System", "Legs", "Core"},
		Equipment:     "Treadmill",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/treadmill-running.jpg",
	},
	{
		Name:        "Push-ups",
		Area:        "Chest",
		Description: "A bodyweight exercise that targets the chest, shoulders, and triceps.",
		Instructions: []string{
			"Start in a plank position with hands slightly wider than shoulders",
			"Keep your body in a straight line from head to heels",
			"Lower your chest towards the ground",
			"Push back up to the starting position",
			"Maintain core engagement throughout the movement",
		},
		TargetMuscles: []string{"Pectoralis Major", "Anterior Deltoids", "Triceps", "Core"},
		Equipment:     "Bodyweight",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/push-ups.jpg",
	},
	{
		Name:        "Hammer Curls",
		Area:        "Biceps",
		Description: "A variation of bicep curls that targets the biceps and forearms with a neutral grip.",
		Instructions: []string{
			"Hold dumbbells with a neutral grip (palms facing each other)",
			"Keep elbows close to your sides",
			"Curl the weights up without rotating your wrists",
			"Squeeze at the top of the movement",
			"Lower the weights back down slowly",
		},
		TargetMuscles: []string{"Biceps Brachii", "Brachialis", "Brachioradialis"},
		Equipment:     "Dumbbells",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/hammer-curls.jpg",
	},
	{
		Name:        "Deadlift",
		Area:        "Back",
		Description: "A compound movement that targets the posterior chain, especially the back, glutes, and hamstrings.",
		Instructions: []string{
			"Stand with feet hip-width apart, barbell over the midfoot",
			"Bend at the hips and knees to grip the bar just outside the knees",
			"Keep your back straight and chest up",
			"Lift the bar by straightening hips and knees together",
			"Lower the bar to the ground with control",
		},
		TargetMuscles: []string{"Erector Spinae", "Gluteus Maximus", "Hamstrings"},
		Equipment:     "Barbell",
		Difficulty:    domain.DifficultyAdvanced,
		ImageKey:      "exercise-images/deadlift.jpg",
	},
	{
		Name:        "Lat Pulldown",
		Area:        "Back",
		Description: "An isolation exercise that primarily targets the latissimus dorsi muscles.",
		Instructions: []string{
			"Sit down at a lat pulldown machine and grab the bar with a wide grip",
			"Pull the bar down toward your chest while squeezing your shoulder blades",
			"Pause briefly at the bottom",
			"Slowly return the bar to the starting position",
			"Repeat for desired reps",
		},
		TargetMuscles: []string{"Latissimus Dorsi", "Biceps", "Rhomboids"},
		Equipment:     "Cable Machine",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/lat-pulldown.jpg",
	},
	{
		Name:        "Overhead Press",
		Area:        "Shoulders",
		Description: "A compound pressing movement that targets the shoulder muscles and triceps.",
		Instructions: []string{
			"Stand with feet shoulder-width apart holding a barbell at shoulder height",
			"Brace your core and press the bar overhead",
			"Lock your elbows at the top and avoid leaning back",
			"Lower the bar back to shoulder height in control",
			"Repeat",
		},
		TargetMuscles: []string{"Deltoids", "Triceps", "Upper Chest"},
		Equipment:     "Barbell",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/overhead-press.jpg",
	},
	{
		Name:        "Leg Press",
		Area:        "Legs",
		Description: "A machine-based lower body exercise that targets the quadriceps, hamstrings, and glutes.",
		Instructions: []string{
			"Sit on the leg press machine with feet shoulder-width on the platform",
			"Push the platform away by extending your legs",
			"Do not lock your knees at the top",
			"Lower the platform slowly until your knees are at 90 degrees",
			"Push back up to starting position",
		},
		TargetMuscles: []string{"Quadriceps", "Gluteus Maximus", "Hamstrings"},
		Equipment:     "Leg Press Machine",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/leg-press.jpg",
	},
	{
		Name:        "Plank",
		Area:        "Core",
		Description: "An isometric core exercise that strengthens abdominal and back muscles.",
		Instructions: []string{
			"Start in a forearm plank position",
			"Keep your body in a straight line from head to heels",
			"Engage your core and glutes",
			"Avoid letting your hips drop or rise too high",
			"Hold the position for as long as possible",
		},
		TargetMuscles: []string{"Rectus Abdominis", "Transverse Abdominis", "Lower Back"},
		Equipment:     "Bodyweight",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/plank.jpg",
	},
	{
		Name:        "Dumbbell Lunges",
		Area:        "Legs",
		Description: "A unilateral leg exercise that targets quads, hamstrings, and glutes.",
		Instructions: []string{
			"Stand upright holding a dumbbell in each hand",
			"Step forward with one leg and lower your body until both knees are bent at 90 degrees",
			"Push off the front leg to return to standing",
			"Alternate legs and repeat",
		},
		TargetMuscles: []string{"Quadriceps", "Gluteus Maximus", "Hamstrings"},
		Equipment:     "Dumbbells",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/dumbbell-lunges.jpg",
	},
	{
		Name:        "Tricep Dips",
		Area:        "Triceps",
		Description: "A bodyweight exercise that effectively targets the triceps using parallel bars or a bench.",
		Instructions: []string{
			"Position your hands behind you on a bench or dip bars",
			"Lower your body by bending your elbows to about 90 degrees",
			"Keep your back close to the bench or bars",
			"Push yourself back up to the starting position",
			"Repeat",
		},
		TargetMuscles: []string{"Triceps Brachii", "Shoulders", "Chest"},
		Equipment:     "Bodyweight or Parallel Bars",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/tricep-dips.jpg",
	},
	{
		Name:        "Russian Twists",
		Area:        "Core",
		Description: "A rotational abdominal exercise that targets the obliques and entire core.",
		Instructions: []string{
			"Sit on the floor with knees bent and feet slightly lifted",
			"Hold a weight or medicine ball with both hands",
			"Lean back slightly and twist your torso to each side",
			"Touch the weight to the ground on each side",
			"Continue alternating sides",
		},
		TargetMuscles: []string{"Obliques", "Rectus Abdominis"},
		Equipment:     "Medicine Ball or Dumbbell",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/russian-twists.jpg",
	},
	{
		Name:        "Seated Row",
		Area:        "Back",
		Description: "A cable machine exercise that targets the middle back muscles through horizontal pulling.",
		Instructions: []string{
			"Sit at the machine with feet on the platform and grab the handles",
			"Pull the handles toward your torso while squeezing your shoulder blades together",
			"Keep your chest upright and elbows close to the body",
			"Slowly extend your arms to return to start",
			"Repeat",
		},
		TargetMuscles: []string{"Rhomboids", "Latissimus Dorsi", "Trapezius"},
		Equipment:     "Cable Machine",
		Difficulty:    domain.DifficultyBeginner,
		ImageKey:      "exercise-images/seated-row.jpg",
	},
	{
		Name:        "Mountain Climbers",
		Area:        "Cardio",
		Description: "A high-intensity bodyweight exercise that boosts heart rate and strengthens the core.",
		Instructions: []string{
			"Start in a push-up position with arms fully extended",
			"Drive one knee toward your chest",
			"Quickly switch legs, simulating a running motion",
			"Keep your hips low and core engaged",
			"Continue alternating knees rapidly",
		},
		TargetMuscles: []string{"Core", "Legs", "Shoulders"},
		Equipment:     "Bodyweight",
		Difficulty:    domain.DifficultyIntermediate,
		ImageKey:      "exercise-images/mountain-climbers.jpg",
	},
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gymRepo := mongo.NewMongoGymRepository(appDB)
	for i := range gyms {
		if err := gymRepo.Upsert(ctx, &gyms[i]); err != nil {
			log.Fatalf("Failed to seed gym %q: %v", gyms[i].Name, err)
		}
	}
	log.Infof("Seeded %d gyms.", len(gyms))

	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	for i := range exercises {
		if err := exerciseRepo.Upsert(ctx, &exercises[i]); err != nil {
			log.Fatalf("Failed to seed exercise %q: %v", exercises[i].Name, err)
		}
	}
	log.Infof("Seeded %d exercises.", len(exercises))
}
