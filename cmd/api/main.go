package main

import (
	"fmt"
	"net/http"

	"github.com/lassie-dev/funeraria-backend-go/internal/config"
	"github.com/lassie-dev/funeraria-backend-go/internal/domain/payroll"
	appHTTP "github.com/lassie-dev/funeraria-backend-go/internal/handler/http"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/database"
	"github.com/lassie-dev/funeraria-backend-go/internal/pkg/jwt"
	"github.com/lassie-dev/funeraria-backend-go/internal/repository/postgresql"
	payrollService "github.com/lassie-dev/funeraria-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	staffRepo := postgresql.NewStaffRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	deductionConfig := payroll.DefaultDeductionConfig()
	deductionConfig.PensionRate = cfg.Payroll.PensionRate
	deductionConfig.HealthRate = cfg.Payroll.HealthRate
	deductionConfig.UnitValue = cfg.Payroll.TaxUnitValue

	earningsRates := payroll.EarningsRates{
		DriverServiceBonus:    cfg.Payroll.DriverServiceBonus,
		AssistantServiceBonus: cfg.Payroll.AssistantServiceBonus,
		NightShiftPremium:     cfg.Payroll.NightShiftPremium,
	}

	earnings := payroll.NewEarningsCalculator(contractRepo, earningsRates)
	deductions := payroll.NewDeductionCalculator(deductionConfig)

	payrollSvc := payrollService.NewPayrollService(staffRepo, payrollRepo, postgresql.NewTxRunner(db), earnings, deductions)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	staffHandler := appHTTP.NewStaffHandler(staffRepo)

	router := appHTTP.NewRouter(jwtService, payrollHandler, staffHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
