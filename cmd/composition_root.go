package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/telegram"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   telegram.NewNotifier(config.TelegramBotToken, logger),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteReceivingCommandHandler() commands.CompleteReceivingCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteReceivingCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRecordPackingCommandHandler() commands.RecordPackingCommandHandler {
	var f commands.PackingUoWFactory = FuncPackingUoWFactory(func() commands.PackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPackingCommandHandler(f, services.NewPackingService())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.CompletionUoWFactory = FuncCompletionUoWFactory(func() commands.CompletionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateOverrideStatusCommandHandler() commands.OverrideStatusCommandHandler {
	var f commands.CompletionUoWFactory = FuncCompletionUoWFactory(func() commands.CompletionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCloseExpiredShipmentsCommandHandler() commands.CloseExpiredShipmentsCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseExpiredShipmentsCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderLinesQueryHandler() queries.GetOrderLinesQueryHandler {
	return queries.NewGetOrderLinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackingEventsQueryHandler() queries.GetPackingEventsQueryHandler {
	return queries.NewGetPackingEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateValidateBarcodeInOrderQueryHandler() queries.ValidateBarcodeInOrderQueryHandler {
	return queries.NewValidateBarcodeInOrderQueryHandler(c.gormDB)
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncReceivingUoWFactory func() commands.ReceivingUoW

func (f FuncReceivingUoWFactory) Create() commands.ReceivingUoW {
	return f()
}

type FuncPackingUoWFactory func() commands.PackingUoW

func (f FuncPackingUoWFactory) Create() commands.PackingUoW {
	return f()
}

type FuncCompletionUoWFactory func() commands.CompletionUoW

func (f FuncCompletionUoWFactory) Create() commands.CompletionUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
