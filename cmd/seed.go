package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample owners and job postings into the store",
	Run: func(cmd *cobra.Command, _ []string) {
		seed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(_ *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	st, driver, err := buildStore(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("setting up the record store", zap.Error(err))
	}

	owner := &farm.User{
		ID:         "whatsapp:+15555550001",
		Role:       farm.RoleOwner,
		Registered: true,
		Profile: farm.Profile{
			Name:     "Sarah Johnson",
			FarmName: "Sunny Acres Farm",
			Location: "Chapel Hill, NC",
			Language: "en",
		},
	}
	if err := st.CreateUser(ctx, owner); err != nil {
		zlog.Fatal("creating sample owner", zap.Error(err))
	}

	for _, job := range sampleJobs(owner) {
		id, err := st.CreateJob(ctx, job)
		if err != nil {
			zlog.Fatal("creating sample job", zap.Error(err))
		}
		zlog.Info("sample job created",
			zap.String("job_id", id),
			zap.String("work_type", job.WorkType),
		)
	}

	zlog.Info("seeding complete", zap.String("store", driver))
}

func sampleJobs(owner *farm.User) []*farm.Job {
	return []*farm.Job{
		{
			WorkType:      "Tobacco Harvesting",
			PayRate:       16.5,
			Location:      "Chapel Hill, NC",
			WorkHours:     "full-time",
			WorkersNeeded: 8,
			Description:   "Harvest tobacco leaves. Must be comfortable working in humid conditions. Experience preferred but training provided.",
			OwnerID:       "whatsapp:+19195550001",
			OwnerName:     "James Wilson",
			FarmName:      "Blue Ridge Farms",
		},
		{
			WorkType:      "Sweet Potato Harvesting",
			PayRate:       17.0,
			Location:      "Durham, NC",
			WorkHours:     "full-time",
			WorkersNeeded: 6,
			Description:   "Harvest sweet potatoes. Heavy lifting required. Paid weekly.",
			OwnerID:       "whatsapp:+19195550002",
			OwnerName:     "Maria Rodriguez",
			FarmName:      "Carolina Sweet Farms",
		},
		{
			WorkType:      "Strawberry Picking",
			PayRate:       15.5,
			Location:      "Raleigh, NC",
			WorkHours:     "part-time",
			WorkersNeeded: 10,
			Description:   "Pick strawberries during morning hours. Great for students or part-time workers.",
			OwnerID:       "whatsapp:+19195550002",
			OwnerName:     "Maria Rodriguez",
			FarmName:      "Carolina Sweet Farms",
		},
		{
			WorkType:      "Greenhouse Work",
			PayRate:       18.0,
			Location:      "Carrboro, NC",
			WorkHours:     "full-time",
			WorkersNeeded: 3,
			Description:   "Maintain greenhouse plants, water, transplant seedlings. Climate-controlled environment.",
			OwnerID:       "whatsapp:+19195550003",
			OwnerName:     "David Chen",
			FarmName:      "Green Leaf Gardens",
		},
		{
			WorkType:      "Livestock Care",
			PayRate:       19.0,
			Location:      "Hillsborough, NC",
			WorkHours:     "flexible",
			WorkersNeeded: 2,
			Description:   "Care for cattle and pigs. Feed animals, clean barns, assist with veterinary care.",
			OwnerID:       "whatsapp:+19195550003",
			OwnerName:     "David Chen",
			FarmName:      "Green Leaf Gardens",
		},
		{
			WorkType:      "Tomato Harvesting",
			Location:      owner.Profile.Location,
			WorkHours:     "6:00 AM - 2:00 PM",
			PaymentType:   farm.PayPerDay,
			PaymentAmount: 120,
			WorkersNeeded: 5,
			Description:   "Seasonal tomato harvest at Sunny Acres.",
			OwnerID:       owner.ID,
			OwnerName:     owner.Profile.Name,
			FarmName:      owner.Profile.FarmName,
		},
	}
}
